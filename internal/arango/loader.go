// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package arango writes graph documents into an ArangoDB database. Vertex
// documents go to the "terms" collection and edges to the "links" edge
// collection; document keys are derived from node labels so repeated loads
// replace instead of duplicating.
package arango

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	driver "github.com/arangodb/go-driver"
	arangohttp "github.com/arangodb/go-driver/http"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const (
	termCollection = "terms"
	linkCollection = "links"
)

// vertexDocument is a node persisted to the terms collection.
type vertexDocument struct {
	Key        string            `json:"_key"`
	Kind       string            `json:"kind"`
	Properties map[string]string `json:"properties"`
}

// edgeDocument is a link persisted to the links edge collection.
type edgeDocument struct {
	Key        string            `json:"_key"`
	From       string            `json:"_from"`
	To         string            `json:"_to"`
	Attributes map[string]string `json:"attributes"`
}

// Loader writes graph documents to one ArangoDB database.
type Loader struct {
	db     driver.Database
	logger *zap.Logger
}

// NewLoader connects to the ArangoDB endpoint in cfg, creating the target
// database and its collections when they do not exist.
func NewLoader(ctx context.Context, cfg types.ArangoConfig, logger *zap.Logger) (*Loader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("arangodb endpoint is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("arangodb database is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := arangohttp.NewConnection(arangohttp.ConnectionConfig{
		Endpoints: []string{cfg.Endpoint},
	})
	if err != nil {
		return nil, fmt.Errorf("creating arangodb connection: %w", err)
	}

	client, err := driver.NewClient(driver.ClientConfig{
		Connection:     conn,
		Authentication: driver.BasicAuthentication(cfg.Username, cfg.Password),
	})
	if err != nil {
		return nil, fmt.Errorf("creating arangodb client: %w", err)
	}

	db, err := ensureDatabase(ctx, client, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := ensureCollections(ctx, db); err != nil {
		return nil, err
	}

	return &Loader{db: db, logger: logger}, nil
}

func ensureDatabase(ctx context.Context, client driver.Client, name string) (driver.Database, error) {
	exists, err := client.DatabaseExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking database %q: %w", name, err)
	}
	if exists {
		db, err := client.Database(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("opening database %q: %w", name, err)
		}
		return db, nil
	}

	db, err := client.CreateDatabase(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("creating database %q: %w", name, err)
	}
	return db, nil
}

func ensureCollections(ctx context.Context, db driver.Database) error {
	if err := ensureCollection(ctx, db, termCollection, nil); err != nil {
		return err
	}
	return ensureCollection(ctx, db, linkCollection, &driver.CreateCollectionOptions{
		Type: driver.CollectionTypeEdge,
	})
}

func ensureCollection(ctx context.Context, db driver.Database, name string, opts *driver.CreateCollectionOptions) error {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", name, err)
	}
	if exists {
		return nil
	}
	if _, err := db.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("creating collection %q: %w", name, err)
	}
	return nil
}

// Load writes every node and link of doc into the database. It continues
// after individual write failures and reports them in the summary.
func (l *Loader) Load(ctx context.Context, doc *types.GraphDocument) (types.LoadSummary, error) {
	summary := types.LoadSummary{RunID: uuid.NewString()}
	logger := l.logger.With(
		zap.String("run_id", summary.RunID),
		zap.String("language", string(doc.Language)),
	)
	logger.Info("starting arangodb load",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("links", len(doc.Links)))

	terms, err := l.db.Collection(ctx, termCollection)
	if err != nil {
		return summary, fmt.Errorf("opening collection %q: %w", termCollection, err)
	}
	links, err := l.db.Collection(ctx, linkCollection)
	if err != nil {
		return summary, fmt.Errorf("opening collection %q: %w", linkCollection, err)
	}

	labelKey := doc.LabelKey
	if labelKey == "" {
		labelKey = "name"
	}

	for _, node := range doc.Nodes {
		if err := upsertDocument(ctx, terms, vertexKey(node.Label), newVertexDocument(node, labelKey)); err != nil {
			logger.Warn("node write failed",
				zap.String("label", node.Label),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Nodes++
	}

	for _, link := range doc.Links {
		if err := upsertDocument(ctx, links, edgeKey(link, labelKey), newEdgeDocument(link, labelKey)); err != nil {
			logger.Warn("link write failed",
				zap.String("source", link.SourceLabel),
				zap.String("target", link.TargetLabel),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Links++
	}

	logger.Info("arangodb load finished",
		zap.Int("nodes_written", summary.Nodes),
		zap.Int("links_written", summary.Links),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// upsertDocument creates the document, falling back to a replace when the
// key already exists.
func upsertDocument(ctx context.Context, col driver.Collection, key string, doc any) error {
	_, err := col.CreateDocument(ctx, doc)
	if driver.IsConflict(err) {
		_, err = col.ReplaceDocument(ctx, key, doc)
	}
	if err != nil {
		return fmt.Errorf("writing document %q: %w", key, err)
	}
	return nil
}

func newVertexDocument(node types.Node, labelKey string) vertexDocument {
	props := make(map[string]string, len(node.Properties)+1)
	for k, v := range node.Properties {
		props[k] = v
	}
	props[labelKey] = node.Label

	return vertexDocument{
		Key:        vertexKey(node.Label),
		Kind:       string(node.Kind),
		Properties: props,
	}
}

func newEdgeDocument(link types.Link, labelKey string) edgeDocument {
	return edgeDocument{
		Key:        edgeKey(link, labelKey),
		From:       termCollection + "/" + vertexKey(link.SourceLabel),
		To:         termCollection + "/" + vertexKey(link.TargetLabel),
		Attributes: link.Attributes,
	}
}

// vertexKey derives a stable ArangoDB document key from a node label. Labels
// contain characters outside the _key alphabet, so the key is a hash.
func vertexKey(label string) string {
	sum := sha1.Sum([]byte(label))
	return hex.EncodeToString(sum[:])
}

// edgeKey hashes (source, target, link label) so distinct-label links
// between the same node pair stay distinct documents.
func edgeKey(link types.Link, labelKey string) string {
	sum := sha1.Sum([]byte(link.SourceLabel + "\x00" + link.TargetLabel + "\x00" + link.Attributes[labelKey]))
	return hex.EncodeToString(sum[:])
}

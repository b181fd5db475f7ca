// Copyright Wilhelm Language Services, 2026. All rights reserved.

// Package neo4j writes graph documents into a Neo4j database. Nodes are
// MERGEd on the label key so repeated loads of the same vocabulary are
// idempotent, and links are created only between nodes that already exist.
package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/qubitpi/wilhelm-loader/pkg/types"
)

const (
	termLabel       = "Term"
	definitionLabel = "Definition"
	linkType        = "RELATED"
)

// Loader writes graph documents to one Neo4j database.
type Loader struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewLoader connects to the Neo4j endpoint in cfg and verifies connectivity
// before returning. Callers own the returned Loader and must Close it.
func NewLoader(ctx context.Context, cfg types.Neo4jConfig, logger *zap.Logger) (*Loader, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j URI is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verifying neo4j connectivity: %w", err)
	}

	return &Loader{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
	}, nil
}

// Close releases the underlying driver.
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// Load writes every node and link of doc into the database. It continues
// after individual write failures and reports them in the summary.
func (l *Loader) Load(ctx context.Context, doc *types.GraphDocument) (types.LoadSummary, error) {
	summary := types.LoadSummary{RunID: uuid.NewString()}
	logger := l.logger.With(
		zap.String("run_id", summary.RunID),
		zap.String("language", string(doc.Language)),
	)
	logger.Info("starting neo4j load",
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("links", len(doc.Links)))

	session := l.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: l.database,
	})
	defer session.Close(ctx)

	labelKey := doc.LabelKey
	if labelKey == "" {
		labelKey = "name"
	}

	for _, node := range doc.Nodes {
		if err := l.writeNode(ctx, session, labelKey, node); err != nil {
			logger.Warn("node write failed",
				zap.String("label", node.Label),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Nodes++
	}

	for _, link := range doc.Links {
		if err := l.writeLink(ctx, session, labelKey, link); err != nil {
			logger.Warn("link write failed",
				zap.String("source", link.SourceLabel),
				zap.String("target", link.TargetLabel),
				zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Links++
	}

	logger.Info("neo4j load finished",
		zap.Int("nodes_written", summary.Nodes),
		zap.Int("links_written", summary.Links),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

func (l *Loader) writeNode(ctx context.Context, session neo4j.SessionWithContext, labelKey string, node types.Node) error {
	query := fmt.Sprintf(
		`MERGE (n:%s {%s: $label}) SET n += $props`,
		nodeLabel(node.Kind), labelKey)

	_, err := session.Run(ctx, query, map[string]any{
		"label": node.Label,
		"props": nodeProperties(node, labelKey),
	})
	if err != nil {
		return fmt.Errorf("merging node %q: %w", node.Label, err)
	}
	return nil
}

func (l *Loader) writeLink(ctx context.Context, session neo4j.SessionWithContext, labelKey string, link types.Link) error {
	query := fmt.Sprintf(
		`MATCH (s {%[1]s: $source}), (t {%[1]s: $target})
		 MERGE (s)-[r:%[2]s {%[1]s: $label}]->(t)
		 SET r += $attrs`,
		labelKey, linkType)

	_, err := session.Run(ctx, query, map[string]any{
		"source": link.SourceLabel,
		"target": link.TargetLabel,
		"label":  link.Attributes[labelKey],
		"attrs":  linkAttributes(link),
	})
	if err != nil {
		return fmt.Errorf("merging link %q -> %q: %w", link.SourceLabel, link.TargetLabel, err)
	}
	return nil
}

// nodeLabel maps a node kind to its Neo4j label.
func nodeLabel(kind types.NodeKind) string {
	if kind == types.NodeDefinition {
		return definitionLabel
	}
	return termLabel
}

// nodeProperties builds the parameter map for a node MERGE. The label key
// is always present so the merged node carries its display value even when
// the source properties omit it.
func nodeProperties(node types.Node, labelKey string) map[string]any {
	props := make(map[string]any, len(node.Properties)+1)
	for k, v := range node.Properties {
		props[k] = v
	}
	props[labelKey] = node.Label
	return props
}

func linkAttributes(link types.Link) map[string]any {
	attrs := make(map[string]any, len(link.Attributes))
	for k, v := range link.Attributes {
		attrs[k] = v
	}
	return attrs
}

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wilhelm-loader/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// QuizletConfig holds settings for study-set export processing.
type QuizletConfig struct {
	HTTPConfig `yaml:",inline"`

	// Language tags the vocabulary produced from a study set.
	Language Language `json:"language" yaml:"language"`
}

// WiktionaryConfig holds settings for conjugation-table scraping.
type WiktionaryConfig struct {
	HTTPConfig `yaml:",inline"`
}

// GraphConfig holds settings for the vocabulary-to-graph transformation.
type GraphConfig struct {
	// Language tags every term node.
	Language Language `json:"language" yaml:"language"`

	// LabelKey is the node property used as the display label (default "name").
	LabelKey string `json:"label_key" yaml:"label_key"`

	// InferLinks controls whether declension-sharing and tokenization
	// links are computed in addition to definition links.
	InferLinks bool `json:"infer_links" yaml:"infer_links"`
}

// Neo4jConfig holds connection settings for the Neo4j loader.
type Neo4jConfig struct {
	// URI is the bolt/neo4j endpoint (e.g. "neo4j://localhost:7687").
	URI string `json:"uri" yaml:"uri"`

	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Database is the target database name; empty selects the server default.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// ArangoConfig holds connection settings for the ArangoDB loader.
type ArangoConfig struct {
	// Endpoint is the HTTP endpoint (e.g. "http://localhost:8529").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// Database is the target database, created on first load if absent.
	Database string `json:"database" yaml:"database"`
}

// IndexConfig holds settings for the local vocabulary index.
type IndexConfig struct {
	// IndexDir is the directory holding the SQLite index database.
	IndexDir string `json:"index_dir" yaml:"index_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoaderConfig groups all stage configurations.
type LoaderConfig struct {
	Quizlet    QuizletConfig    `json:"quizlet" yaml:"quizlet"`
	Wiktionary WiktionaryConfig `json:"wiktionary" yaml:"wiktionary"`
	Graph      GraphConfig      `json:"graph" yaml:"graph"`
	Neo4j      Neo4jConfig      `json:"neo4j" yaml:"neo4j"`
	Arango     ArangoConfig     `json:"arango" yaml:"arango"`
	Index      IndexConfig      `json:"index" yaml:"index"`
}

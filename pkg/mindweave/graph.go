package mindweave

import "fmt"

// Article is the collaborator-supplied metadata for one article,
// index-aligned with the embedding list. Content may be empty.
type Article struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Position is a 2-D display coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one article in the mind map.
type Node struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Cluster        int      `json:"cluster"`
	Position       Position `json:"position"`
	Keywords       []string `json:"keywords"`
	ContentPreview string   `json:"content_preview"`
}

// Edge connects two similar articles. Source and Target are node ids
// with Source ordered before Target, so each unordered pair appears
// once.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Cluster is a group of related articles. Articles across all clusters
// partition the full article index set.
type Cluster struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Articles []int    `json:"articles"`
	Size     int      `json:"size"`
}

// RunInfo describes how a graph was produced.
type RunInfo struct {
	ClusteringMethod string `json:"clustering_method"`
	NumClusters      int    `json:"n_clusters"`
	TotalArticles    int    `json:"total_articles"`
}

// Graph is the assembled mind map. It is built once per request and
// immutable afterwards; the caller owns it.
type Graph struct {
	Nodes    []Node    `json:"nodes"`
	Edges    []Edge    `json:"edges"`
	Clusters []Cluster `json:"clusters"`
	Metadata RunInfo   `json:"metadata"`
}

// previewLen is the content preview length in characters.
const previewLen = 200

func nodeID(i int) string {
	return fmt.Sprintf("node_%d", i)
}

func contentPreview(content string) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	if len(runes) <= previewLen {
		return content
	}
	return string(runes[:previewLen]) + "..."
}

// orEmpty keeps keyword lists serializing as [] instead of null.
func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

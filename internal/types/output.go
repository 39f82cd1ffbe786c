package types

// MigrationOutput is the normalized document written for each parsed Application
type MigrationOutput struct {
	Metadata         OutputMetadata    `json:"metadata"`
	Project          string            `json:"project"`
	Source           OutputSource      `json:"source"`
	Destination      OutputDestination `json:"destination"`
	EnableSyncPolicy bool              `json:"enableSyncPolicy"`
}

// OutputMetadata carries the application name, normalized annotations and merged labels
type OutputMetadata struct {
	Name        string            `json:"name"`
	Annotations map[string]string `json:"annotations"`
	Labels      map[string]string `json:"labels"`
}

// OutputSource is the source section of the migration output
type OutputSource struct {
	RepoURL      string           `json:"repoURL"`
	Revision     string           `json:"revision"`
	ManifestPath *string          `json:"manifestPath"`
	Directory    *OutputDirectory `json:"directory,omitempty"`
}

// OutputDirectory configures manifest discovery for path based sources
type OutputDirectory struct {
	Recurse bool `json:"recurse"`
}

// OutputDestination is the destination section of the migration output
type OutputDestination struct {
	ClusterName string `json:"clusterName"`
	Namespace   string `json:"namespace"`
}

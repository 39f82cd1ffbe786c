// Package types holds the data model shared by the loader, validator, mapper
// and batch packages: the ArgoCD Application input, the migration output
// document and per-file processing results.
package types

const (
	// APIVersion is the only supported Application apiVersion
	APIVersion = "argoproj.io/v1alpha1"
	// Kind is the only supported Application kind
	Kind = "Application"

	// DefaultNamespace is used when metadata.namespace is not set
	DefaultNamespace = "argocd"
	// DefaultProject is used when spec.project is not set
	DefaultProject = "default"
	// DefaultTargetRevision is used when spec.source.targetRevision is not set
	DefaultTargetRevision = "HEAD"
)

// Application is a validated ArgoCD Application manifest with defaults applied
type Application struct {
	APIVersion string
	Kind       string
	Metadata   Metadata
	Spec       Spec
}

// Metadata is the metadata section of an Application
type Metadata struct {
	Name        string
	Namespace   string
	Labels      map[string]string
	Annotations map[string]string
}

// Spec is the spec section of an Application
type Spec struct {
	Project     string
	Source      Source
	Destination Destination
	// SyncPolicy is kept opaque, only its presence is significant
	SyncPolicy map[string]any
	// IgnoreDifferences and Info are accepted but never mapped
	IgnoreDifferences []any
	Info              []any
}

// HasSyncPolicy reports whether the manifest declared a syncPolicy block
func (s Spec) HasSyncPolicy() bool {
	return s.SyncPolicy != nil
}

// Source describes where the application manifests come from.
// Exactly one of Path and Chart is set.
type Source struct {
	RepoURL        string
	TargetRevision string
	Path           *string
	Chart          *string
}

// Destination describes the target cluster and namespace.
// Exactly one of Server and Name is set.
type Destination struct {
	Server    *string
	Name      *string
	Namespace string
}

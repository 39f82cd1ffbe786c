// Package mapper transforms a validated ArgoCD Application into the
// migration output document. Everything here is pure: lookup tables are
// passed in and nothing is read from or written to disk.
package mapper

import (
	"maps"
	"slices"

	"github.com/alevsk/argocd-migrate/internal/types"
)

// FallbackClusterName is used when a destination server has no entry in the cluster mappings
const FallbackClusterName = "default"

// Tables holds the optional lookup tables applied during mapping
type Tables struct {
	// ClusterMappings translates destination server URLs into cluster names
	ClusterMappings map[string]string
	// DefaultLabels are added to every output, manifest labels win on conflict
	DefaultLabels map[string]string
}

// Collision records two annotation keys that normalize to the same output key.
// Source keys are applied in sorted order so Kept is always the greater one.
type Collision struct {
	Target  string
	Kept    string
	Dropped string
}

// Transform builds the migration output for app. Annotation key collisions are
// resolved deterministically and reported back to the caller.
func Transform(app *types.Application, tables Tables) (*types.MigrationOutput, []Collision) {
	annotations, collisions := NormalizeAnnotations(app.Metadata.Annotations)

	out := &types.MigrationOutput{
		Metadata: types.OutputMetadata{
			Name:        app.Metadata.Name,
			Annotations: annotations,
			Labels:      MergeLabels(tables.DefaultLabels, app.Metadata.Labels),
		},
		Project: app.Spec.Project,
		Source: types.OutputSource{
			RepoURL:  app.Spec.Source.RepoURL,
			Revision: app.Spec.Source.TargetRevision,
		},
		Destination: types.OutputDestination{
			ClusterName: ResolveClusterName(app.Spec.Destination, tables.ClusterMappings),
			Namespace:   app.Spec.Destination.Namespace,
		},
		EnableSyncPolicy: app.Spec.HasSyncPolicy(),
	}

	if app.Spec.Source.Path != nil {
		out.Source.ManifestPath = types.StringPtr(*app.Spec.Source.Path)
		out.Source.Directory = &types.OutputDirectory{Recurse: true}
	}

	return out, collisions
}

// NormalizeAnnotations rewrites every annotation key with NormalizeKey
func NormalizeAnnotations(in map[string]string) (map[string]string, []Collision) {
	out := make(map[string]string, len(in))
	origin := make(map[string]string, len(in))
	var collisions []Collision

	for _, key := range slices.Sorted(maps.Keys(in)) {
		target := NormalizeKey(key)
		if prev, ok := origin[target]; ok {
			collisions = append(collisions, Collision{Target: target, Kept: key, Dropped: prev})
		}
		origin[target] = key
		out[target] = in[key]
	}
	return out, collisions
}

// MergeLabels overlays labels on top of defaults. Either map may be nil.
func MergeLabels(defaults, labels map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(labels))
	maps.Copy(merged, defaults)
	maps.Copy(merged, labels)
	return merged
}

// ResolveClusterName returns the cluster name for a destination. A server URL
// is looked up in mappings and falls back to FallbackClusterName; otherwise
// the destination name is used as written.
func ResolveClusterName(dst types.Destination, mappings map[string]string) string {
	if dst.Server != nil {
		if name, ok := mappings[*dst.Server]; ok {
			return name
		}
		return FallbackClusterName
	}
	if dst.Name != nil {
		return *dst.Name
	}
	return FallbackClusterName
}

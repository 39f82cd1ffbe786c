package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alevsk/argocd-migrate/internal/types"
)

// validManifest returns a fresh, minimal valid Application document
func validManifest() map[string]any {
	return map[string]any{
		"apiVersion": "argoproj.io/v1alpha1",
		"kind":       "Application",
		"metadata": map[string]any{
			"name": "guestbook",
		},
		"spec": map[string]any{
			"source": map[string]any{
				"repoURL": "https://github.com/argoproj/argocd-example-apps.git",
				"path":    "guestbook",
			},
			"destination": map[string]any{
				"server":    "https://kubernetes.default.svc",
				"namespace": "guestbook",
			},
		},
	}
}

func section(doc map[string]any, path ...string) map[string]any {
	cur := doc
	for _, p := range path {
		cur = cur[p].(map[string]any)
	}
	return cur
}

func requireErrors(t *testing.T, err error) Errors {
	t.Helper()
	require.Error(t, err)
	var verrs Errors
	require.True(t, errors.As(err, &verrs), "expected validator.Errors, got %T", err)
	return verrs
}

func TestValidateDefaults(t *testing.T) {
	app, err := Validate(validManifest())
	require.NoError(t, err)

	assert.Equal(t, "guestbook", app.Metadata.Name)
	assert.Equal(t, types.DefaultNamespace, app.Metadata.Namespace)
	assert.Equal(t, types.DefaultProject, app.Spec.Project)
	assert.Equal(t, types.DefaultTargetRevision, app.Spec.Source.TargetRevision)
	assert.Empty(t, app.Metadata.Labels)
	assert.NotNil(t, app.Metadata.Labels)
	assert.Empty(t, app.Metadata.Annotations)
	assert.False(t, app.Spec.HasSyncPolicy())
	require.NotNil(t, app.Spec.Source.Path)
	assert.Equal(t, "guestbook", *app.Spec.Source.Path)
	assert.Nil(t, app.Spec.Source.Chart)
	require.NotNil(t, app.Spec.Destination.Server)
	assert.Nil(t, app.Spec.Destination.Name)
}

func TestValidateTrimsRequiredStrings(t *testing.T) {
	doc := validManifest()
	section(doc, "metadata")["name"] = "  guestbook  "
	section(doc, "spec", "source")["repoURL"] = "\thttps://example.com/repo.git\n"
	section(doc, "spec", "destination")["namespace"] = " apps "

	app, err := Validate(doc)
	require.NoError(t, err)
	assert.Equal(t, "guestbook", app.Metadata.Name)
	assert.Equal(t, "https://example.com/repo.git", app.Spec.Source.RepoURL)
	assert.Equal(t, "apps", app.Spec.Destination.Namespace)
}

func TestValidateKeepsChoicesVerbatim(t *testing.T) {
	t.Run("padded values pass through", func(t *testing.T) {
		doc := validManifest()
		section(doc, "spec", "source")["path"] = " apps/guestbook "
		delete(section(doc, "spec", "destination"), "server")
		section(doc, "spec", "destination")["name"] = " edge "

		app, err := Validate(doc)
		require.NoError(t, err)
		require.NotNil(t, app.Spec.Source.Path)
		assert.Equal(t, " apps/guestbook ", *app.Spec.Source.Path)
		require.NotNil(t, app.Spec.Destination.Name)
		assert.Equal(t, " edge ", *app.Spec.Destination.Name)
	})

	t.Run("empty path alone is accepted", func(t *testing.T) {
		doc := validManifest()
		section(doc, "spec", "source")["path"] = ""

		app, err := Validate(doc)
		require.NoError(t, err)
		require.NotNil(t, app.Spec.Source.Path)
		assert.Equal(t, "", *app.Spec.Source.Path)
		assert.Nil(t, app.Spec.Source.Chart)
	})
}

func TestValidateMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(doc map[string]any)
		wantField string
	}{
		{"apiVersion", func(doc map[string]any) { delete(doc, "apiVersion") }, "apiVersion"},
		{"kind", func(doc map[string]any) { delete(doc, "kind") }, "kind"},
		{"metadata", func(doc map[string]any) { delete(doc, "metadata") }, "metadata"},
		{"metadata.name", func(doc map[string]any) { delete(section(doc, "metadata"), "name") }, "metadata.name"},
		{"spec", func(doc map[string]any) { delete(doc, "spec") }, "spec"},
		{"spec.source", func(doc map[string]any) { delete(section(doc, "spec"), "source") }, "spec.source"},
		{"spec.source.repoURL", func(doc map[string]any) { delete(section(doc, "spec", "source"), "repoURL") }, "spec.source.repoURL"},
		{"spec.destination", func(doc map[string]any) { delete(section(doc, "spec"), "destination") }, "spec.destination"},
		{"spec.destination.namespace", func(doc map[string]any) {
			delete(section(doc, "spec", "destination"), "namespace")
		}, "spec.destination.namespace"},
		{"null name counts as missing", func(doc map[string]any) { section(doc, "metadata")["name"] = nil }, "metadata.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validManifest()
			tt.mutate(doc)

			_, err := Validate(doc)
			verrs := requireErrors(t, err)
			assert.Contains(t, verrs.Fields(), tt.wantField)
			for _, fe := range verrs {
				if fe.Field == tt.wantField {
					assert.Equal(t, MsgRequired, fe.Message)
				}
			}
		})
	}
}

func TestValidateBlankRequiredStrings(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(doc map[string]any)
		wantField string
	}{
		{"empty name", func(doc map[string]any) { section(doc, "metadata")["name"] = "" }, "metadata.name"},
		{"whitespace repoURL", func(doc map[string]any) { section(doc, "spec", "source")["repoURL"] = "   " }, "spec.source.repoURL"},
		{"whitespace namespace", func(doc map[string]any) {
			section(doc, "spec", "destination")["namespace"] = "\t"
		}, "spec.destination.namespace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validManifest()
			tt.mutate(doc)

			_, err := Validate(doc)
			verrs := requireErrors(t, err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, MsgEmpty, verrs[0].Message)
		})
	}
}

func TestValidateLiterals(t *testing.T) {
	doc := validManifest()
	doc["apiVersion"] = "argoproj.io/v1beta1"
	doc["kind"] = "AppProject"

	_, err := Validate(doc)
	verrs := requireErrors(t, err)
	require.Len(t, verrs, 2)
	assert.Equal(t, "apiVersion", verrs[0].Field)
	assert.Contains(t, verrs[0].Message, `"argoproj.io/v1alpha1"`)
	assert.Equal(t, "kind", verrs[1].Field)
	assert.Contains(t, verrs[1].Message, `"Application"`)
}

func TestValidateExclusiveChoices(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(doc map[string]any)
		wantField   string
		wantMessage string
	}{
		{
			name: "path and chart",
			mutate: func(doc map[string]any) {
				section(doc, "spec", "source")["chart"] = "nginx"
			},
			wantField:   "spec.source",
			wantMessage: "must specify exactly one of 'path' or 'chart', both are set",
		},
		{
			name: "neither path nor chart",
			mutate: func(doc map[string]any) {
				delete(section(doc, "spec", "source"), "path")
			},
			wantField:   "spec.source",
			wantMessage: "must specify exactly one of 'path' or 'chart', neither is set",
		},
		{
			name: "empty path still counts as set",
			mutate: func(doc map[string]any) {
				section(doc, "spec", "source")["path"] = ""
				section(doc, "spec", "source")["chart"] = "nginx"
			},
			wantField:   "spec.source",
			wantMessage: "must specify exactly one of 'path' or 'chart', both are set",
		},
		{
			name: "null path counts as absent",
			mutate: func(doc map[string]any) {
				section(doc, "spec", "source")["path"] = nil
			},
			wantField:   "spec.source",
			wantMessage: "must specify exactly one of 'path' or 'chart', neither is set",
		},
		{
			name: "server and name",
			mutate: func(doc map[string]any) {
				section(doc, "spec", "destination")["name"] = "in-cluster"
			},
			wantField:   "spec.destination",
			wantMessage: "must specify exactly one of 'server' or 'name', both are set",
		},
		{
			name: "neither server nor name",
			mutate: func(doc map[string]any) {
				delete(section(doc, "spec", "destination"), "server")
			},
			wantField:   "spec.destination",
			wantMessage: "must specify exactly one of 'server' or 'name', neither is set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validManifest()
			tt.mutate(doc)

			_, err := Validate(doc)
			verrs := requireErrors(t, err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, tt.wantMessage, verrs[0].Message)
		})
	}
}

func TestValidateChoicesAreIndependent(t *testing.T) {
	doc := validManifest()
	section(doc, "spec", "source")["chart"] = "nginx"
	delete(section(doc, "spec", "destination"), "server")

	_, err := Validate(doc)
	verrs := requireErrors(t, err)
	assert.Equal(t, []string{"spec.source", "spec.destination"}, verrs.Fields())
}

func TestValidateCollectsErrorsTopDown(t *testing.T) {
	doc := map[string]any{
		"metadata": map[string]any{},
		"spec": map[string]any{
			"source":      map[string]any{},
			"destination": map[string]any{},
		},
	}

	_, err := Validate(doc)
	verrs := requireErrors(t, err)
	assert.Equal(t, []string{
		"apiVersion",
		"kind",
		"metadata.name",
		"spec.source.repoURL",
		"spec.source",
		"spec.destination.namespace",
		"spec.destination",
	}, verrs.Fields())
}

func TestValidateIgnoresUnknownFields(t *testing.T) {
	doc := validManifest()
	doc["status"] = map[string]any{"health": "Healthy"}
	section(doc, "metadata")["finalizers"] = []any{"resources-finalizer.argocd.argoproj.io"}
	section(doc, "spec", "source")["helm"] = map[string]any{"releaseName": "x"}
	section(doc, "spec", "destination")["extra"] = 42

	_, err := Validate(doc)
	assert.NoError(t, err)
}

func TestValidateTypeMismatches(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(doc map[string]any)
		wantField string
	}{
		{"metadata is a list", func(doc map[string]any) { doc["metadata"] = []any{"a"} }, "metadata"},
		{"label value not a string", func(doc map[string]any) {
			section(doc, "metadata")["labels"] = map[string]any{"enabled": true}
		}, "metadata.labels.enabled"},
		{"annotations is a string", func(doc map[string]any) {
			section(doc, "metadata")["annotations"] = "nope"
		}, "metadata.annotations"},
		{"targetRevision is a number", func(doc map[string]any) {
			section(doc, "spec", "source")["targetRevision"] = 1.5
		}, "spec.source.targetRevision"},
		{"syncPolicy is a string", func(doc map[string]any) {
			section(doc, "spec")["syncPolicy"] = "auto"
		}, "spec.syncPolicy"},
		{"ignoreDifferences is a mapping", func(doc map[string]any) {
			section(doc, "spec")["ignoreDifferences"] = map[string]any{}
		}, "spec.ignoreDifferences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validManifest()
			tt.mutate(doc)

			_, err := Validate(doc)
			verrs := requireErrors(t, err)
			assert.Contains(t, verrs.Fields(), tt.wantField)
		})
	}
}

func TestValidateSyncPolicyPresence(t *testing.T) {
	doc := validManifest()
	section(doc, "spec")["syncPolicy"] = map[string]any{}

	app, err := Validate(doc)
	require.NoError(t, err)
	assert.True(t, app.Spec.HasSyncPolicy())

	doc = validManifest()
	section(doc, "spec")["syncPolicy"] = nil
	app, err = Validate(doc)
	require.NoError(t, err)
	assert.False(t, app.Spec.HasSyncPolicy())
}

func TestIsApplication(t *testing.T) {
	assert.True(t, IsApplication(validManifest()))
	assert.False(t, IsApplication(map[string]any{"apiVersion": "v1", "kind": "ConfigMap"}))
	assert.False(t, IsApplication(map[string]any{}))
}

func TestErrorsString(t *testing.T) {
	errs := Errors{
		{Field: "apiVersion", Message: MsgRequired},
		{Field: "spec.source", Message: "bad"},
	}
	assert.Equal(t, "apiVersion: field required; spec.source: bad", errs.Error())
	assert.Equal(t, "no validation errors", Errors{}.Error())
}

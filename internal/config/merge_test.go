package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func mongoInstance(name, uri string) MongoInstance {
	return MongoInstance{Name: name, Config: MongoConfig{URI: uri}}
}

func TestMergeInstances(t *testing.T) {
	tests := []struct {
		name string
		file []MongoInstance
		env  []MongoInstance
		want []MongoInstance
	}{
		{
			name: "both empty",
			want: []MongoInstance{},
		},
		{
			name: "file only",
			file: []MongoInstance{mongoInstance("a", "f")},
			want: []MongoInstance{mongoInstance("a", "f")},
		},
		{
			name: "env only",
			env:  []MongoInstance{mongoInstance("a", "e")},
			want: []MongoInstance{mongoInstance("a", "e")},
		},
		{
			name: "override keeps position",
			file: []MongoInstance{mongoInstance("a", "f1"), mongoInstance("b", "f2"), mongoInstance("c", "f3")},
			env:  []MongoInstance{mongoInstance("b", "e2")},
			want: []MongoInstance{mongoInstance("a", "f1"), mongoInstance("b", "e2"), mongoInstance("c", "f3")},
		},
		{
			name: "new names appended in env order",
			file: []MongoInstance{mongoInstance("a", "f1")},
			env:  []MongoInstance{mongoInstance("z", "e1"), mongoInstance("a", "e2"), mongoInstance("y", "e3")},
			want: []MongoInstance{mongoInstance("a", "e2"), mongoInstance("z", "e1"), mongoInstance("y", "e3")},
		},
		{
			name: "only first file duplicate replaced",
			file: []MongoInstance{mongoInstance("a", "f1"), mongoInstance("a", "f2")},
			env:  []MongoInstance{mongoInstance("a", "e")},
			want: []MongoInstance{mongoInstance("a", "e"), mongoInstance("a", "f2")},
		},
		{
			name: "later env duplicate wins",
			env:  []MongoInstance{mongoInstance("a", "e1"), mongoInstance("a", "e2")},
			want: []MongoInstance{mongoInstance("a", "e2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeInstances(tt.file, tt.env))
		})
	}
}

// TestMergeInstances_InputsUntouched verifies that neither input slice is
// modified.
func TestMergeInstances_InputsUntouched(t *testing.T) {
	file := []MongoInstance{mongoInstance("a", "f1"), mongoInstance("b", "f2")}
	env := []MongoInstance{mongoInstance("a", "e1"), mongoInstance("c", "e3")}

	MergeInstances(file, env)

	assert.Equal(t, []MongoInstance{mongoInstance("a", "f1"), mongoInstance("b", "f2")}, file)
	assert.Equal(t, []MongoInstance{mongoInstance("a", "e1"), mongoInstance("c", "e3")}, env)
}

func TestMergeInstances_Callback(t *testing.T) {
	type call struct {
		name     string
		replaced bool
	}
	var calls []call

	mergeInstances(
		[]MongoInstance{mongoInstance("a", "f")},
		[]MongoInstance{mongoInstance("a", "e"), mongoInstance("b", "e")},
		func(name string, replaced bool) { calls = append(calls, call{name, replaced}) },
	)

	assert.Equal(t, []call{{"a", true}, {"b", false}}, calls)
}

func drawInstances(t *rapid.T, label string) []MongoInstance {
	names := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "d", "e"}), 0, 6).Draw(t, label+"Names")
	out := make([]MongoInstance, len(names))
	for i, name := range names {
		out[i] = mongoInstance(name, rapid.StringMatching(`[a-z]{1,4}`).Draw(t, label+"URI"))
	}
	return out
}

// TestMergeInstances_Properties checks the merge laws on random inputs:
// every env instance is present with its last env value, file-only names
// keep their value and position, and the length is the file length plus
// the number of distinct new names.
func TestMergeInstances_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		file := drawInstances(t, "file")
		env := drawInstances(t, "env")

		got := MergeInstances(file, env)

		fileNames := make(map[string]bool)
		for _, f := range file {
			fileNames[f.Name] = true
		}
		lastEnv := make(map[string]string)
		newNames := make(map[string]bool)
		for _, e := range env {
			lastEnv[e.Name] = e.Config.URI
			if !fileNames[e.Name] {
				newNames[e.Name] = true
			}
		}

		if want := len(file) + len(newNames); len(got) != want {
			t.Fatalf("len = %d, want %d", len(got), want)
		}

		for i, f := range file {
			if got[i].Name != f.Name {
				t.Fatalf("position %d holds %q, want %q", i, got[i].Name, f.Name)
			}
			if _, overridden := lastEnv[f.Name]; !overridden && got[i] != f {
				t.Fatalf("file-only instance %q changed", f.Name)
			}
		}

		for name, uri := range lastEnv {
			found := false
			for _, g := range got {
				if g.Name == name && g.Config.URI == uri {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("env instance %q with uri %q missing", name, uri)
			}
		}
	})
}

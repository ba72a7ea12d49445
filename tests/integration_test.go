package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgdebus/scenewalk/hierarchy"
	"github.com/pgdebus/scenewalk/internal/ingest"
	"github.com/pgdebus/scenewalk/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneJSON = `{
  "name": "Level",
  "tags": ["Root"],
  "children": [
    {
      "name": "Props",
      "tags": ["Static"],
      "children": [
        {"name": "Crate", "tags": ["Wood"]},
        {"name": "Barrel", "active": false, "tags": ["Wood"]}
      ]
    },
    {
      "name": "Actors",
      "children": [
        {"name": "Player"},
        {"name": "Crate"}
      ]
    }
  ]
}`

// Full pipeline: JSON document → graph → searches → SQLite snapshot →
// reload → same answers.
func TestScenePipeline(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "level.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sceneJSON), 0o644))

	g, err := ingest.LoadFile(jsonPath)
	require.NoError(t, err)

	runSearches := func(t *testing.T, g *scene.Graph) {
		root := g.Root()

		// depth-first finds the Crate under Props (earlier sibling subtree first)
		n, err := hierarchy.FindDescendant(root, hierarchy.ByName("Crate"), false, hierarchy.DepthFirst)
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, "/Level/Props/Crate", hierarchy.PathOf(n))

		// both Crates collected in traversal order
		all, err := hierarchy.FindDescendants(root, hierarchy.ByName("Crate"), false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "/Level/Props/Crate", hierarchy.PathOf(all[0]))
		assert.Equal(t, "/Level/Actors/Crate", hierarchy.PathOf(all[1]))

		// activity filter drops the inactive Barrel as a match
		wood, err := hierarchy.FindDescendants(root, hierarchy.ByTag("Wood"), false)
		require.NoError(t, err)
		assert.Len(t, wood, 2)
		woodActive, err := hierarchy.FindDescendants(root, hierarchy.ByTag("Wood"), true)
		require.NoError(t, err)
		require.Len(t, woodActive, 1)
		assert.Equal(t, "Crate", woodActive[0].Name())

		// ancestor search by tag
		barrel := hierarchy.FindPath(root, "/Level/Props/Barrel")
		require.NotNil(t, barrel)
		anc, err := hierarchy.FindAncestor(barrel, hierarchy.ByTag("Static"))
		require.NoError(t, err)
		require.NotNil(t, anc)
		assert.Equal(t, "Props", anc.Name())

		// unknown tag is a contract violation, not absence
		_, err = hierarchy.FindDescendant(root, hierarchy.ByTag("Metal"), false, hierarchy.DepthFirst)
		require.Error(t, err)
		assert.ErrorIs(t, err, scene.ErrUnknownTag)
	}

	runSearches(t, g)

	// snapshot round trip preserves every answer
	dbPath := filepath.Join(dir, "level.db")
	require.NoError(t, scene.Save(g, dbPath))
	reloaded, err := ingest.LoadFile(dbPath)
	require.NoError(t, err)
	runSearches(t, reloaded)
}

func TestLoadFile_Dispatch(t *testing.T) {
	dir := t.TempDir()

	hclPath := filepath.Join(dir, "mini.hcl")
	require.NoError(t, os.WriteFile(hclPath, []byte("object \"root\" {\n  object \"kid\" {}\n}\n"), 0o644))
	g, err := ingest.LoadFile(hclPath)
	require.NoError(t, err)
	assert.NotNil(t, hierarchy.FindPath(g.Root(), "/root/kid"))

	_, err = ingest.LoadFile(filepath.Join(dir, "scene.yaml"))
	assert.Error(t, err, "unsupported extension")

	_, err = ingest.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

// Reparenting in the host tree invalidates previously materialized paths,
// and fresh calls observe the new shape.
func TestReparentChangesPaths(t *testing.T) {
	g, err := ingest.LoadJSON([]byte(sceneJSON))
	require.NoError(t, err)

	player := hierarchy.FindPath(g.Root(), "/Level/Actors/Player")
	require.NotNil(t, player)
	props := hierarchy.FindPath(g.Root(), "/Level/Props")
	require.NotNil(t, props)

	require.NoError(t, props.(*scene.Object).AddChild(player.(*scene.Object)))
	assert.Equal(t, "/Level/Props/Player", hierarchy.PathOf(player))
	assert.Nil(t, hierarchy.FindPath(g.Root(), "/Level/Actors/Player"))
}

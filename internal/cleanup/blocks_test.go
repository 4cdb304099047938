package cleanup

import (
	"context"
	"math"
	"testing"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) model.Point2D {
	return model.Point2D{X: x, Y: y}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := model.DefaultAppConfig()
	cfg.DrawingName = "Plan"
	s, err := NewSession(drawing.New(), cfg, nil)
	require.NoError(t, err)
	return s
}

func squareObject() *drawing.Object {
	return &drawing.Object{Kind: drawing.KindCurve, Curve: &model.Curve{
		Kind:   model.CurvePolyline,
		Points: model.Outline{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)},
		Closed: true,
	}}
}

func lineObject(x1, y1, x2, y2 float64) *drawing.Object {
	return &drawing.Object{Kind: drawing.KindCurve, Curve: &model.Curve{
		Kind:   model.CurveLine,
		Points: model.Outline{pt(x1, y1), pt(x2, y2)},
	}}
}

func findGroup(d *drawing.Document, name string) string {
	for _, g := range d.Groups() {
		if d.GroupName(g) == name {
			return g
		}
	}
	return ""
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.DrawingName = ""
	_, err := NewSession(drawing.New(), cfg, nil)
	assert.ErrorIs(t, err, model.ErrInvalidConfig)

	_, err = NewSession(nil, model.DefaultAppConfig(), nil)
	assert.Error(t, err)
}

func TestFindBlocks(t *testing.T) {
	s := newTestSession(t)
	s.Config.BlockKeywords = []string{"faucet", "Fire Extinguisher"}
	d := s.Doc

	require.NoError(t, d.AddBlock("Lab FAUCET 02", []*drawing.Object{squareObject()}))
	require.NoError(t, d.AddBlock("Chair", []*drawing.Object{squareObject()}))
	faucet, err := d.InsertBlock("A-PLUMB", "Lab FAUCET 02", model.Identity())
	require.NoError(t, err)
	_, err = d.InsertBlock("A-FURN", "Chair", model.Identity())
	require.NoError(t, err)
	locked, err := d.InsertBlock("A-LOCKED", "Lab FAUCET 02", model.Identity())
	require.NoError(t, err)
	l, _ := d.Layer("A-LOCKED")
	l.Locked = true

	found := s.FindBlocks(context.Background())
	assert.Equal(t, []string{faucet}, found)
	assert.Equal(t, []string{faucet}, d.Selected())
	assert.NotContains(t, found, locked)

	kws, err := s.KeywordsInBlockName(faucet)
	require.NoError(t, err)
	assert.Equal(t, []string{"faucet"}, kws)

	line := d.AddLine("", pt(0, 0), pt(1, 0))
	_, err = s.KeywordsInBlockName(line)
	assert.ErrorIs(t, err, ErrNotInstance)
}

func TestPurgeUnusedBlocks_Nested(t *testing.T) {
	s := newTestSession(t)
	d := s.Doc
	require.NoError(t, d.AddBlock("Leg", []*drawing.Object{lineObject(0, 0, 0, 1)}))
	require.NoError(t, d.AddBlock("Table", []*drawing.Object{
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "Leg", Transform: model.Identity()}},
	}))
	require.NoError(t, d.AddBlock("Lamp", []*drawing.Object{lineObject(0, 0, 1, 1)}))
	_, err := d.InsertBlock("", "Lamp", model.Identity())
	require.NoError(t, err)

	purged := s.PurgeUnusedBlocks(context.Background())
	assert.Equal(t, []string{"Table", "Leg"}, purged, "Leg becomes unused once Table is gone")
	assert.Equal(t, []string{"Lamp"}, d.ListBlockDefinitions())
}

func TestReplaceSameBlocks(t *testing.T) {
	s := newTestSession(t)
	d := s.Doc
	require.NoError(t, d.AddBlock("Chair-1", []*drawing.Object{squareObject()}))
	require.NoError(t, d.AddBlock("Chair-2", []*drawing.Object{squareObject()}))
	require.NoError(t, d.AddBlock("Table", []*drawing.Object{squareObject(), lineObject(0, 0, 10, 10)}))
	require.NoError(t, d.AddBlock("Orphan", []*drawing.Object{squareObject()}))

	_, err := d.InsertBlock("A-FURN", "Chair-1", model.Identity())
	require.NoError(t, err)
	xfA := model.NewInsertTransform(pt(20, 0), 1, 1, 0)
	xfB := model.NewInsertTransform(pt(40, 0), 1, 1, math.Pi/2)
	c2a, err := d.InsertBlock("A-FURN", "Chair-2", xfA)
	require.NoError(t, err)
	c2b, err := d.InsertBlock("A-FURN", "Chair-2", xfB)
	require.NoError(t, err)
	_, err = d.InsertBlock("A-FURN", "Table", model.Identity())
	require.NoError(t, err)

	replacements, partition, err := s.ReplaceSameBlocks(context.Background())
	require.NoError(t, err)

	_, orphan := d.Block("Orphan")
	assert.False(t, orphan, "unused definitions are purged first")

	require.Len(t, partition, 2)
	assert.Equal(t, "Chair-1", partition[0].Representative)
	assert.Equal(t, []string{"Chair-2"}, partition[0].Members)
	assert.Equal(t, "Table", partition[1].Representative)

	require.Len(t, replacements, 2)
	for i, want := range []model.Transform{xfA, xfB} {
		o, ok := d.Object(replacements[i])
		require.True(t, ok)
		assert.Equal(t, "Chair-1", o.Instance.Block)
		assert.Equal(t, want, o.Instance.Transform)
		assert.Equal(t, "A-FURN", o.Layer)
	}
	assert.Equal(t, replacements, d.Selected())
	assert.Equal(t, replacements, d.GroupMembers(findGroup(d, "New")))
	assert.Equal(t, []string{c2a, c2b}, d.GroupMembers(findGroup(d, "Old")))

	_, stillThere := d.Object(c2a)
	assert.True(t, stillThere, "originals are kept for review")
}

func TestReplaceSameBlocks_NoBlocks(t *testing.T) {
	s := newTestSession(t)
	replacements, partition, err := s.ReplaceSameBlocks(context.Background())
	require.NoError(t, err)
	assert.Nil(t, replacements)
	assert.Nil(t, partition)
}

func TestBlocksToGroups_Nested(t *testing.T) {
	s := newTestSession(t)
	d := s.Doc
	require.NoError(t, d.AddBlock("Leg", []*drawing.Object{lineObject(0, 0, 0, 1)}))
	require.NoError(t, d.AddBlock("Table", []*drawing.Object{
		lineObject(0, 0, 2, 0),
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "Leg", Transform: model.NewInsertTransform(pt(2, 0), 1, 1, 0)}},
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "Leg", Transform: model.Identity()}},
	}))
	_, err := d.InsertBlock("A-FURN", "Table", model.NewInsertTransform(pt(5, 5), 1, 1, 0))
	require.NoError(t, err)

	groups, err := s.BlocksToGroups(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	members := d.GroupMembers(groups[0])
	require.Len(t, members, 3)
	assert.Empty(t, d.ObjectIDs(drawing.KindInstance))

	leg, err := d.Curve(members[1])
	require.NoError(t, err)
	assert.Equal(t, model.Outline{pt(7, 5), pt(7, 6)}, leg.Points)
}

func TestBlockToGroup_Cycle(t *testing.T) {
	s := newTestSession(t)
	d := s.Doc
	require.NoError(t, d.AddBlock("A", []*drawing.Object{
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "B", Transform: model.Identity()}},
	}))
	require.NoError(t, d.AddBlock("B", []*drawing.Object{
		lineObject(0, 0, 1, 0),
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "A", Transform: model.Identity()}},
	}))
	inst, err := d.InsertBlock("", "A", model.Identity())
	require.NoError(t, err)

	before := d.ObjectIDs()
	_, err = s.BlockToGroup(inst)
	assert.ErrorIs(t, err, ErrCyclicBlock)
	assert.Equal(t, before, d.ObjectIDs(), "a failed conversion leaves the document unchanged")
	assert.Empty(t, d.Groups())

	line := d.AddLine("", pt(0, 0), pt(1, 0))
	_, err = s.BlockToGroup(line)
	assert.ErrorIs(t, err, ErrNotInstance)
}

func TestBlockToGroup_MissingNestedBlock(t *testing.T) {
	s := newTestSession(t)
	d := s.Doc
	require.NoError(t, d.AddBlock("Desk", []*drawing.Object{
		lineObject(0, 0, 1, 0),
		{Kind: drawing.KindInstance, Instance: &drawing.Instance{Block: "Drawer", Transform: model.Identity()}},
	}))
	inst, err := d.InsertBlock("A-FURN", "Desk", model.Identity())
	require.NoError(t, err)

	_, err = s.BlockToGroup(inst)
	assert.ErrorIs(t, err, drawing.ErrNotFound)
	assert.Equal(t, []string{inst}, d.ObjectIDs(), "the instance is kept when a nested block is missing")
}

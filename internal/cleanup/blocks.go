package cleanup

import (
	"context"
	"fmt"

	"github.com/piwi3910/PlanTidy/internal/drawing"
	"github.com/piwi3910/PlanTidy/internal/engine"
	"github.com/piwi3910/PlanTidy/internal/model"
)

// FindBlocks selects the instances of every block whose name contains one of
// the configured keywords, ignoring case. Instances on hidden or locked
// layers and instances nested inside other blocks are not considered.
func (s *Session) FindBlocks(ctx context.Context) []string {
	var found []string
	for _, name := range s.Doc.ListBlockDefinitions() {
		if len(s.matchKeywords(name)) == 0 {
			continue
		}
		for _, id := range s.Doc.BlockInstances(name) {
			if o, ok := s.Doc.Object(id); ok && s.editable(o) {
				found = append(found, id)
			}
		}
	}
	s.Doc.Select(found)
	s.Logger.WithOp("find_blocks").InfoContext(ctx, "blocks found", "instances", len(found))
	return found
}

// KeywordsInBlockName returns the configured keywords found in the name of
// an instance's block definition.
func (s *Session) KeywordsInBlockName(id string) ([]string, error) {
	o, ok := s.Doc.Object(id)
	if !ok {
		return nil, fmt.Errorf("object %q: %w", id, drawing.ErrNotFound)
	}
	if o.Instance == nil {
		return nil, fmt.Errorf("object %q: %w", id, ErrNotInstance)
	}
	return s.matchKeywords(o.Instance.Block), nil
}

func (s *Session) matchKeywords(name string) []string {
	var out []string
	for _, kw := range s.Config.BlockKeywords {
		if containsFold(name, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// PurgeUnusedBlocks deletes block definitions that have no instance, top
// level or nested, until none is left. It returns the deleted names.
func (s *Session) PurgeUnusedBlocks(ctx context.Context) []string {
	var purged []string
	for {
		removed := false
		for _, name := range s.Doc.ListBlockDefinitions() {
			if s.Doc.BlockInstanceCount(name) > 0 {
				continue
			}
			if err := s.Doc.DeleteBlock(name); err == nil {
				purged = append(purged, name)
				removed = true
			}
		}
		if !removed {
			break
		}
	}
	if len(purged) > 0 {
		s.Logger.WithOp("purge_blocks").InfoContext(ctx, "unused blocks purged", "blocks", len(purged))
	}
	return purged
}

// ClusterBlocks groups the document's block definitions by similarity.
func (s *Session) ClusterBlocks(ctx context.Context) (model.SimilarityPartition, error) {
	names := s.Doc.ListBlockDefinitions()
	defs := make([]model.BlockDefinition, 0, len(names))
	for _, name := range names {
		def, err := s.Doc.BlockDefinition(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	partition, err := engine.NewClusterer(s.Config.Settings).Cluster(defs)
	if err != nil {
		return nil, fmt.Errorf("cluster blocks: %w", err)
	}
	s.Logger.WithOp("cluster").LogCluster(ctx, len(defs), len(partition))
	return partition, nil
}

// ReplaceSameBlocks inserts, for every instance of a block judged similar to
// another, an instance of the representative block with the same transform.
// The new instances are grouped as "New" and selected; the originals are
// grouped as "Old" and kept. Unused definitions are purged first.
func (s *Session) ReplaceSameBlocks(ctx context.Context) ([]string, model.SimilarityPartition, error) {
	s.PurgeUnusedBlocks(ctx)
	if len(s.Doc.ListBlockDefinitions()) == 0 {
		return nil, nil, nil
	}
	partition, err := s.ClusterBlocks(ctx)
	if err != nil {
		return nil, nil, err
	}

	newGroup := s.Doc.NamedGroup("New", nil)
	oldGroup := s.Doc.NamedGroup("Old", nil)
	var replacements []string
	for _, g := range partition {
		for _, member := range g.Members {
			for _, inst := range s.Doc.BlockInstances(member) {
				xf, err := s.Doc.InstanceTransform(inst)
				if err != nil {
					return nil, nil, err
				}
				layer, err := s.Doc.LayerOf(inst)
				if err != nil {
					return nil, nil, err
				}
				id, err := s.Doc.InsertBlock(layer, g.Representative, xf)
				if err != nil {
					return nil, nil, fmt.Errorf("replace %q with %q: %w", member, g.Representative, err)
				}
				s.Doc.AddToGroup(newGroup, id)
				s.Doc.AddToGroup(oldGroup, inst)
				replacements = append(replacements, id)
			}
		}
	}
	s.Doc.Select(replacements)
	s.Logger.WithOp("replace_blocks").InfoContext(ctx, "similar blocks replaced",
		"groups", len(partition),
		"replacements", len(replacements),
	)
	return replacements, partition, nil
}

// BlockToGroup explodes an instance, nested instances included, and groups
// the resulting objects. It fails with ErrCyclicBlock when a block contains
// itself at any depth.
func (s *Session) BlockToGroup(id string) (string, error) {
	o, ok := s.Doc.Object(id)
	if !ok {
		return "", fmt.Errorf("object %q: %w", id, drawing.ErrNotFound)
	}
	if o.Instance == nil {
		return "", fmt.Errorf("object %q: %w", id, ErrNotInstance)
	}

	if err := s.checkBlockGraph(o.Instance.Block, nil); err != nil {
		return "", err
	}

	stack := []string{id}
	var members []string
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		ids, err := s.Doc.ExplodeInstance(top)
		if err != nil {
			return "", err
		}
		var nested []string
		for _, cid := range ids {
			if child, _ := s.Doc.Object(cid); child.Instance != nil {
				nested = append(nested, cid)
				continue
			}
			members = append(members, cid)
		}
		for i := len(nested) - 1; i >= 0; i-- {
			stack = append(stack, nested[i])
		}
	}
	return s.Doc.Group(members), nil
}

// checkBlockGraph walks the definitions reachable from block and fails on a
// missing definition or a block that contains itself. Nothing is modified,
// so a failing conversion leaves the document untouched.
func (s *Session) checkBlockGraph(block string, chain []string) error {
	for _, seen := range chain {
		if seen == block {
			return fmt.Errorf("explode %q: %w", block, ErrCyclicBlock)
		}
	}
	def, ok := s.Doc.Block(block)
	if !ok {
		return fmt.Errorf("block %q: %w", block, drawing.ErrNotFound)
	}
	chain = append(chain, block)
	for _, o := range def.Objects {
		if o.Instance == nil {
			continue
		}
		if err := s.checkBlockGraph(o.Instance.Block, chain[:len(chain):len(chain)]); err != nil {
			return err
		}
	}
	return nil
}

// BlocksToGroups converts instances to groups. With no IDs every top-level
// instance in the document is converted.
func (s *Session) BlocksToGroups(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		ids = s.Doc.ObjectIDs(drawing.KindInstance)
	}
	var groups []string
	for _, id := range ids {
		g, err := s.BlockToGroup(id)
		if err != nil {
			return groups, err
		}
		groups = append(groups, g)
	}
	s.Logger.WithOp("blocks_to_groups").InfoContext(ctx, "blocks converted", "groups", len(groups))
	return groups, nil
}

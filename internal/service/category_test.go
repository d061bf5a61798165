package service

import (
	"context"
	"testing"

	"github.com/amirahs/stockroom-golang/internal/apperror"
	"github.com/amirahs/stockroom-golang/internal/models"
	"github.com/amirahs/stockroom-golang/internal/repository"
)

func TestCategorySlug(t *testing.T) {
	env := newTestEnv(t)
	category := env.mustCategory(t, "Cleaning Supplies", nil)
	if category.Slug != "cleaning-supplies" {
		t.Errorf("slug = %q, want cleaning-supplies", category.Slug)
	}
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	env := newTestEnv(t)
	category := env.mustCategory(t, "Produce", nil)

	_, err := env.catalog.Update(context.Background(), category.ID, "Produce", &category.ID)
	if apperror.GetCode(err) != apperror.CodeValidation {
		t.Errorf("code = %q, want validation", apperror.GetCode(err))
	}
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// a -> b -> c, then try to hang a under c.
	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	c := env.mustCategory(t, "C", &b.ID)

	_, err := env.catalog.Update(ctx, a.ID, "A", &c.ID)
	if err == nil {
		t.Fatal("expected a cycle to be rejected")
	}
	if apperror.GetCode(err) != apperror.CodeValidation {
		t.Errorf("code = %q, want validation", apperror.GetCode(err))
	}

	// The tree is unchanged.
	got, _ := env.categories.GetByID(ctx, a.ID)
	if got.ParentID != nil {
		t.Error("A must still be a root")
	}
}

func TestReparentWithinTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	c := env.mustCategory(t, "C", nil)

	// Moving B under C is legal.
	updated, err := env.catalog.Update(ctx, b.ID, "B", &c.ID)
	if err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != c.ID {
		t.Errorf("B parent = %v, want %d", updated.ParentID, c.ID)
	}
}

func TestDeleteCategorySubtreeKeepsItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.mustUser(t, models.RoleStaff)

	produce := env.mustCategory(t, "Produce", nil)
	organic := env.mustCategory(t, "Organic", &produce.ID)
	tools := env.mustCategory(t, "Tools", nil)

	apples := env.mustItem(t, user.ID, "Apples", 10, &produce.ID)
	kale := env.mustItem(t, user.ID, "Kale", 4, &organic.ID)
	hammer := env.mustItem(t, user.ID, "Hammer", 2, &tools.ID)

	if err := env.catalog.Delete(ctx, produce.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Both Produce and its child Organic are gone.
	if _, err := env.categories.GetByID(ctx, produce.ID); apperror.GetCode(err) != apperror.CodeNotFound {
		t.Error("Produce should be deleted")
	}
	if _, err := env.categories.GetByID(ctx, organic.ID); apperror.GetCode(err) != apperror.CodeNotFound {
		t.Error("Organic (child) should be deleted with the subtree")
	}

	// Items survive with their category cleared.
	for _, id := range []int64{apples.ID, kale.ID} {
		item, err := env.items.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("item %d must survive category deletion: %v", id, err)
		}
		if item.CategoryID != nil {
			t.Errorf("item %d category = %v, want nil", id, *item.CategoryID)
		}
	}

	// Unrelated items are untouched.
	got, _ := env.items.GetByID(ctx, hammer.ID)
	if got.CategoryID == nil || *got.CategoryID != tools.ID {
		t.Error("Hammer should keep its Tools category")
	}
}

// deleteOrderRecorder captures the ids handed to DeleteByIDs before
// delegating to the real repository.
type deleteOrderRecorder struct {
	repository.CategoryRepository
	deleted []int64
}

func (r *deleteOrderRecorder) DeleteByIDs(ctx context.Context, ids []int64) error {
	r.deleted = append(r.deleted, ids...)
	return r.CategoryRepository.DeleteByIDs(ctx, ids)
}

func TestDeleteCategoryRemovesChildrenBeforeParents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCategory(t, "Root", nil)
	mid := env.mustCategory(t, "Mid", &root.ID)
	leaf := env.mustCategory(t, "Leaf", &mid.ID)
	sibling := env.mustCategory(t, "Sibling", &root.ID)

	recorder := &deleteOrderRecorder{CategoryRepository: env.categories}
	catalog := NewCategoryService(recorder, env.items, repository.NewMemoryTxManager(env.store))

	if err := catalog.Delete(ctx, root.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	pos := map[int64]int{}
	for i, id := range recorder.deleted {
		pos[id] = i
	}
	if len(pos) != 4 {
		t.Fatalf("deleted %d categories, want 4 (%v)", len(pos), recorder.deleted)
	}

	// The parent_id FK demands children go first: a child deleted after
	// its parent would reference a row that is already gone.
	for _, pair := range []struct {
		child, parent int64
	}{
		{leaf.ID, mid.ID},
		{mid.ID, root.ID},
		{sibling.ID, root.ID},
	} {
		if pos[pair.child] >= pos[pair.parent] {
			t.Errorf("category %d deleted at %d, after its parent %d at %d (order %v)",
				pair.child, pos[pair.child], pair.parent, pos[pair.parent], recorder.deleted)
		}
	}
}

func TestTreeNestsGrandchildren(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCategory(t, "A", nil)
	b := env.mustCategory(t, "B", &a.ID)
	env.mustCategory(t, "C", &b.ID)

	tree, err := env.catalog.Tree(context.Background())
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	root := tree[0]
	if len(root.Children) != 1 || root.Children[0].Name != "B" {
		t.Fatalf("root children = %+v, want [B]", root.Children)
	}
	if len(root.Children[0].Children) != 1 || root.Children[0].Children[0].Name != "C" {
		t.Errorf("depth-3 category C must appear under B")
	}
}

package blogservice

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
)

func (bs *BlogService) CreateTaxonomy(ctx context.Context, author models.User, category string) (int64, error) {
	t := models.Taxonomy{
		Category:  category,
		CreatedAt: time.Now(),
		Author:    author,
	}

	id, err := bs.contentRepo.CreateTaxonomy(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("create taxonomy error: %w", err)
	}

	return id, nil
}

func (bs *BlogService) Taxonomy(ctx context.Context, id int64) (models.Taxonomy, error) {
	return bs.contentRepo.GetTaxonomy(ctx, id)
}

func (bs *BlogService) Taxonomies(ctx context.Context) ([]models.Taxonomy, error) {
	return bs.contentRepo.ListTaxonomies(ctx)
}

func (bs *BlogService) EditTaxonomy(ctx context.Context, actor models.User, id int64, category string) error {
	t, err := bs.contentRepo.GetTaxonomy(ctx, id)
	if err != nil {
		return err
	}

	if t.Author.ID != actor.ID && !actor.IsAdministrator() {
		return ErrForbidden
	}

	if err := bs.contentRepo.UpdateTaxonomy(ctx, id, category); err != nil {
		return fmt.Errorf("update taxonomy error: %w", err)
	}

	return nil
}

// DeleteTaxonomy requires ownership or ADMINISTER, same as editing.
func (bs *BlogService) DeleteTaxonomy(ctx context.Context, actor models.User, id int64) error {
	t, err := bs.contentRepo.GetTaxonomy(ctx, id)
	if err != nil {
		return err
	}

	if t.Author.ID != actor.ID && !actor.IsAdministrator() {
		return ErrForbidden
	}

	if err := bs.contentRepo.DeleteTaxonomy(ctx, id); err != nil {
		return fmt.Errorf("delete taxonomy error: %w", err)
	}

	return nil
}

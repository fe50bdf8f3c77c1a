package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bestcdmx/i18n"
	"bestcdmx/logging"
	"bestcdmx/models"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

// ErrNotFound is returned by the single-row lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Store runs the read-only catalog queries.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// NewStore wraps db. Each query is bounded by timeout when it is positive.
func NewStore(db *sql.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

const publishedRestaurantsQuery = `
	SELECT r.id::text, r.slug, r.name,
	       COALESCE(r.description_en, ''), COALESCE(r.description_es, ''),
	       COALESCE(r.tagline, ''), COALESCE(r.image_url, ''), COALESCE(r.price_range, ''),
	       COALESCE(r.rating, 0)::float8, COALESCE(r.custom_score, 0)::float8,
	       COALESCE(r.latitude, 0)::float8, COALESCE(r.longitude, 0)::float8,
	       COALESCE(r.features, '{}'),
	       n.id::text, n.slug, n.name,
	       COALESCE((SELECT json_agg(json_build_object('id', c.id::text, 'slug', c.slug, 'name_en', c.name_en, 'name_es', c.name_es) ORDER BY c.name_en)
	                 FROM restaurant_categories rc JOIN categories c ON rc.category_id = c.id
	                 WHERE rc.restaurant_id = r.id), '[]') AS categories
	FROM restaurants r
	JOIN neighborhoods n ON n.id = r.neighborhood_id
	WHERE r.status = 'published'
	ORDER BY r.name ASC
`

// PublishedRestaurants returns every published restaurant ordered by name,
// with its neighborhood and categories. Rows that fail to scan are skipped.
func (s *Store) PublishedRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, publishedRestaurantsQuery)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	results := []models.Restaurant{}
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("skipping restaurant row")
			continue
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate restaurants: %w", err)
	}
	return results, nil
}

func scanRestaurant(rows *sql.Rows) (models.Restaurant, error) {
	var (
		r              models.Restaurant
		descEN, descES string
		categoriesJSON []byte
	)
	err := rows.Scan(
		&r.ID, &r.Slug, &r.Name, &descEN, &descES,
		&r.Tagline, &r.ImageURL, &r.PriceRange,
		&r.Rating, &r.CustomScore, &r.Latitude, &r.Longitude,
		pq.Array(&r.Features),
		&r.Neighborhood.ID, &r.Neighborhood.Slug, &r.Neighborhood.Name,
		&categoriesJSON,
	)
	if err != nil {
		return r, err
	}
	r.Description = i18n.Text{i18n.English: descEN, i18n.Spanish: descES}
	r.Categories, err = decodeCategories(categoriesJSON)
	if err != nil {
		return r, fmt.Errorf("restaurant %s categories: %w", r.ID, err)
	}
	return r, nil
}

type categoryRow struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	NameEN string `json:"name_en"`
	NameES string `json:"name_es"`
}

// decodeCategories reads the json_agg column built by the restaurant query.
func decodeCategories(raw []byte) ([]models.Category, error) {
	var rows []categoryRow
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
	}
	out := make([]models.Category, 0, len(rows))
	for _, c := range rows {
		out = append(out, models.Category{
			ID:   c.ID,
			Slug: c.Slug,
			Name: i18n.Text{i18n.English: c.NameEN, i18n.Spanish: c.NameES},
		})
	}
	return out, nil
}

const categoryColumns = `
	id::text, slug, name_en, name_es,
	COALESCE(description_en, ''), COALESCE(description_es, '')
`

// Categories returns every category ordered by English name.
func (s *Store) Categories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY name_en ASC")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CategoryBySlug returns ErrNotFound for an unknown slug.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE slug = $1", slug)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, fmt.Errorf("category %q: %w", slug, err)
	}
	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (models.Category, error) {
	var (
		c              models.Category
		nameEN, nameES string
		descEN, descES string
	)
	if err := row.Scan(&c.ID, &c.Slug, &nameEN, &nameES, &descEN, &descES); err != nil {
		return c, err
	}
	c.Name = i18n.Text{i18n.English: nameEN, i18n.Spanish: nameES}
	c.Description = i18n.Text{i18n.English: descEN, i18n.Spanish: descES}
	return c, nil
}

const neighborhoodColumns = `
	n.id::text, n.slug, n.name,
	COALESCE(n.description_en, ''), COALESCE(n.description_es, '')
`

// ActiveNeighborhoods returns the neighborhoods that have at least one
// published restaurant, ordered by name.
func (s *Store) ActiveNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+neighborhoodColumns+`
		FROM neighborhoods n
		WHERE EXISTS (SELECT 1 FROM restaurants r WHERE r.neighborhood_id = n.id AND r.status = 'published')
		ORDER BY n.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query neighborhoods: %w", err)
	}
	defer rows.Close()

	neighborhoods := []models.Neighborhood{}
	for rows.Next() {
		n, err := scanNeighborhood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan neighborhood: %w", err)
		}
		neighborhoods = append(neighborhoods, n)
	}
	return neighborhoods, rows.Err()
}

// NeighborhoodBySlug returns ErrNotFound for an unknown slug. Neighborhoods
// without published restaurants are found too.
func (s *Store) NeighborhoodBySlug(ctx context.Context, slug string) (models.Neighborhood, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+neighborhoodColumns+" FROM neighborhoods n WHERE n.slug = $1", slug)
	n, err := scanNeighborhood(row)
	if errors.Is(err, sql.ErrNoRows) {
		return n, ErrNotFound
	}
	if err != nil {
		return n, fmt.Errorf("neighborhood %q: %w", slug, err)
	}
	return n, nil
}

func scanNeighborhood(row scanner) (models.Neighborhood, error) {
	var (
		n              models.Neighborhood
		descEN, descES string
	)
	if err := row.Scan(&n.ID, &n.Slug, &n.Name, &descEN, &descES); err != nil {
		return n, err
	}
	n.Description = i18n.Text{i18n.English: descEN, i18n.Spanish: descES}
	return n, nil
}

const guideColumns = `
	g.id::text, g.slug, g.type, g.name_en, g.name_es,
	COALESCE(g.content_en, ''), COALESCE(g.content_es, ''),
	COALESCE(g.meta_title_en, ''), COALESCE(g.meta_title_es, ''),
	COALESCE(g.meta_description_en, ''), COALESCE(g.meta_description_es, ''),
	COALESCE(g.cover_image_path, ''), g.created_at,
	(SELECT count(*) FROM guide_items gi WHERE gi.guide_id = g.id)
`

// Guides returns every guide, newest first, with its item count.
func (s *Store) Guides(ctx context.Context) ([]models.Guide, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+guideColumns+" FROM guides g ORDER BY g.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query guides: %w", err)
	}
	defer rows.Close()

	guides := []models.Guide{}
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guide: %w", err)
		}
		guides = append(guides, g)
	}
	return guides, rows.Err()
}

// GuideBySlug returns the guide with its restaurant items ordered by rank.
// Items pointing at unpublished restaurants are left out. It returns
// ErrNotFound for an unknown slug.
func (s *Store) GuideBySlug(ctx context.Context, slug string) (models.Guide, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+guideColumns+" FROM guides g WHERE g.slug = $1", slug)
	g, err := scanGuide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return g, ErrNotFound
	}
	if err != nil {
		return g, fmt.Errorf("guide %q: %w", slug, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT gi.item_id::text, COALESCE(gi.rank, 0),
		       COALESCE(gi.highlight_en, ''), COALESCE(gi.highlight_es, '')
		FROM guide_items gi
		JOIN restaurants r ON r.id::text = gi.item_id::text AND r.status = 'published'
		WHERE gi.guide_id::text = $1 AND gi.item_type = 'restaurant'
		ORDER BY gi.rank ASC NULLS LAST
	`, g.ID)
	if err != nil {
		return g, fmt.Errorf("query guide %q items: %w", slug, err)
	}
	defer rows.Close()

	g.Items = []models.GuideItem{}
	for rows.Next() {
		var (
			item       models.GuideItem
			hlEN, hlES string
		)
		if err := rows.Scan(&item.RestaurantID, &item.Rank, &hlEN, &hlES); err != nil {
			return g, fmt.Errorf("scan guide item: %w", err)
		}
		item.Highlight = i18n.Text{i18n.English: hlEN, i18n.Spanish: hlES}
		g.Items = append(g.Items, item)
	}
	return g, rows.Err()
}

func scanGuide(row scanner) (models.Guide, error) {
	var (
		g                    models.Guide
		nameEN, nameES       string
		contentEN, contentES string
		metaEN, metaES       string
		descEN, descES       string
	)
	err := row.Scan(
		&g.ID, &g.Slug, &g.Type, &nameEN, &nameES,
		&contentEN, &contentES, &metaEN, &metaES, &descEN, &descES,
		&g.CoverImagePath, &g.CreatedAt, &g.ItemCount,
	)
	if err != nil {
		return g, err
	}
	g.Name = i18n.Text{i18n.English: nameEN, i18n.Spanish: nameES}
	g.Content = i18n.Text{i18n.English: contentEN, i18n.Spanish: contentES}
	g.MetaTitle = i18n.Text{i18n.English: metaEN, i18n.Spanish: metaES}
	g.MetaDescription = i18n.Text{i18n.English: descEN, i18n.Spanish: descES}
	return g, nil
}

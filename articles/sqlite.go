package articles

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"rssdelivery/models"
)

const timeLayout = "2006-01-02 15:04:05"

// Store is a SQLite-backed Repository.
type Store struct {
	db *sql.DB
}

// NewStore opens the article database read-only with settings tuned for
// concurrent feed requests.
func NewStore(database string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?mode=ro&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", database))
	if err != nil {
		return nil, fmt.Errorf("failed to open article database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(time.Hour)

	if _, err := db.Exec(`
		PRAGMA busy_timeout = 5000;
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -32000;
		PRAGMA temp_store = MEMORY;
	`); err != nil {
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Query(ctx context.Context, c Criteria) ([]models.Article, error) {
	sb := selectArticles()

	if c.PostType != "" {
		sb.Where(sb.Equal("articles.post_type", c.PostType))
	}
	if len(c.Statuses) > 0 {
		sb.Where(sb.In("articles.status", lo.ToAnySlice(c.Statuses)...))
	}
	if c.Channel != "" {
		// The selected-channel set is stored as a JSON string array; the
		// quoted identifier cannot prefix-match another identifier.
		sb.Where(fmt.Sprintf(
			`EXISTS (SELECT 1 FROM article_meta m WHERE m.article_id = articles.id AND m.key = %s AND m.value LIKE %s)`,
			sb.Args.Add(models.MetaSelectedChannels),
			sb.Args.Add(`%"`+c.Channel+`"%`),
		))
	}
	for _, key := range c.MetaExists {
		sb.Where(fmt.Sprintf(
			`EXISTS (SELECT 1 FROM article_meta m WHERE m.article_id = articles.id AND m.key = %s AND m.value <> '')`,
			sb.Args.Add(key),
		))
	}

	orderBy := c.OrderBy
	if orderBy == "" {
		orderBy = OrderByDate
	}
	sb.OrderBy("articles." + string(orderBy)).Desc()
	if c.Limit > 0 {
		sb.Limit(c.Limit)
	}

	return s.queryArticles(ctx, sb)
}

func (s *Store) RelatedByTags(ctx context.Context, tags []string, limit int, exclude []int64) ([]models.Article, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	sb := selectArticles()
	sb.Join("article_terms", "article_terms.article_id = articles.id")
	sb.Where(sb.Equal("article_terms.taxonomy", "tag"))
	sb.Where(sb.In("article_terms.name", lo.ToAnySlice(tags)...))
	sb.Where(sb.Equal("articles.status", string(models.StatusPublished)))
	if len(exclude) > 0 {
		sb.Where(sb.NotIn("articles.id", lo.ToAnySlice(exclude)...))
	}
	sb.GroupBy("articles.id")
	sb.OrderBy("articles.published_at").Desc()
	sb.Limit(limit)

	return s.queryArticles(ctx, sb)
}

func (s *Store) Latest(ctx context.Context, limit int, exclude []int64) ([]models.Article, error) {
	if limit <= 0 {
		return nil, nil
	}
	sb := selectArticles()
	sb.Where(sb.Equal("articles.status", string(models.StatusPublished)))
	if len(exclude) > 0 {
		sb.Where(sb.NotIn("articles.id", lo.ToAnySlice(exclude)...))
	}
	sb.OrderBy("articles.published_at").Desc()
	sb.Limit(limit)

	return s.queryArticles(ctx, sb)
}

func (s *Store) GalleryFor(ctx context.Context, articleID int64) (*models.Gallery, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("galleries.id", "galleries.title", "galleries.permalink")
	sb.From("galleries")
	sb.Join("gallery_links", "gallery_links.gallery_id = galleries.id")
	sb.Where(sb.Equal("gallery_links.article_id", articleID))
	sb.Limit(1)

	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	var gallery models.Gallery
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&gallery.ID, &gallery.Title, &gallery.Permalink)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gallery query error: %w", err)
	}
	return &gallery, nil
}

func selectArticles() *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select(
		"articles.id", "articles.post_type", "articles.status",
		"articles.title", "articles.body", "articles.author",
		"articles.permalink", "articles.guid", "articles.featured_image_id",
		"articles.published_at", "articles.modified_at",
	)
	sb.From("articles")
	return sb
}

func (s *Store) queryArticles(ctx context.Context, sb *sqlbuilder.SelectBuilder) ([]models.Article, error) {
	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var (
			a         models.Article
			featured  sql.NullInt64
			published string
			modified  string
		)
		if err := rows.Scan(
			&a.ID, &a.PostType, &a.Status, &a.Title, &a.Body, &a.Author,
			&a.Permalink, &a.GUID, &featured, &published, &modified,
		); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		a.FeaturedImageID = featured.Int64
		a.PublishedAt = parseNaive(published)
		a.ModifiedAt = parseNaive(modified)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i := range articles {
		if err := s.loadTerms(ctx, &articles[i]); err != nil {
			return nil, err
		}
		if err := s.loadMeta(ctx, &articles[i]); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

func (s *Store) loadTerms(ctx context.Context, a *models.Article) error {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("taxonomy", "name")
	sb.From("article_terms")
	sb.Where(sb.Equal("article_id", a.ID))
	sb.OrderBy("position").Asc()

	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("terms query error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taxonomy, name string
		if err := rows.Scan(&taxonomy, &name); err != nil {
			return fmt.Errorf("terms scan error: %w", err)
		}
		switch taxonomy {
		case "category":
			a.Categories = append(a.Categories, name)
		case "tag":
			a.Tags = append(a.Tags, name)
		}
	}
	return rows.Err()
}

func (s *Store) loadMeta(ctx context.Context, a *models.Article) error {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("key", "value")
	sb.From("article_meta")
	sb.Where(sb.Equal("article_id", a.ID))

	query, args := sb.BuildWithFlavor(sqlbuilder.SQLite)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("meta query error: %w", err)
	}
	defer rows.Close()

	a.Meta = map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("meta scan error: %w", err)
		}
		a.Meta[key] = value
	}
	return rows.Err()
}

// parseNaive reads a naive site-local timestamp. Values that fail to parse
// render as the zero time rather than failing the whole query.
func parseNaive(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		log.WithFields(log.Fields{"value": s}).Warn("Unparseable timestamp in article store")
		return time.Time{}
	}
	return t
}

package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

// The seed binary writes these tables with raw SQL, so its column lists must
// stay in step with what AutoMigrate creates from the models.
func TestModelColumns_MatchSeedWrites(t *testing.T) {
	cases := []struct {
		model   interface{}
		columns []string
	}{
		{&User{}, []string{
			"id", "username", "email", "password_hash", "display_name",
			"role", "is_active", "email_verified", "provider",
			"created_at", "updated_at",
		}},
		{&Category{}, []string{
			"name", "slug", "description", "created_at", "updated_at",
		}},
		{&Story{}, []string{
			"slug", "title", "description", "author_id", "author_name",
			"status", "is_published", "created_at", "updated_at",
		}},
		{&Chapter{}, []string{
			"story_id", "slug", "title", "content", "order", "uploader_id",
			"word_count", "reading_time", "is_published",
			"created_at", "updated_at",
		}},
		{&Page{}, []string{
			"slug", "title", "content", "is_active", "created_at", "updated_at",
		}},
	}

	for _, tc := range cases {
		s, err := schema.Parse(tc.model, &sync.Map{}, schema.NamingStrategy{})
		assert.NoError(t, err)

		for _, col := range tc.columns {
			_, ok := s.FieldsByDBName[col]
			assert.True(t, ok, "%s has no column %q", s.Table, col)
		}
	}
}

package app

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"house_explorer/internal/domain"
)

/********** alias registries **********/

var listingAliases = map[string][]string{
	"id":          {"id", "listing_id", "house_id", "houseId"},
	"title":       {"title", "name", "headline"},
	"location":    {"location", "address.city_state", "city", "address.city"},
	"description": {"description", "summary", "body"},
	"image":       {"imageUrl", "image_url", "image", "cover.url", "photo"},
	"architect":   {"architect", "architect.name", "designer"},
	"style":       {"style", "architecture_style", "tags.style"},
}

var reviewAliases = map[string][]string{
	"id":       {"id", "review_id", "reviewId"},
	"user_id":  {"userId", "user_id", "user.id", "author_id"},
	"username": {"username", "userName", "author", "user.name", "reviewer.name"},
	"avatar":   {"avatar", "avatar_url", "user.avatar", "reviewer.avatar"},
	"comment":  {"comment", "text", "review", "body", "content"},
	"date":     {"date", "created_at", "createdAt", "submitted_at"},
	"rating":   {"rating", "score", "rating.value", "stars"},
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "". Numbers are formatted, so numeric
// ids survive.
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "4,5").
func getFloatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// firstSliceStrings: accept []any with either strings or {url/src}.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if u, ok := t["url"].(string); ok && u != "" {
					out = append(out, u)
				} else if u, ok := t["src"].(string); ok && u != "" {
					out = append(out, u)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxStars {
		return maxStars
	}
	return v
}

/********** listing mapper **********/

// mapListing converts one feed record. Records without an id, a title, a
// positive price or a known style are rejected.
func mapListing(p map[string]any) (domain.Listing, error) {
	l := domain.Listing{
		ID:          firstAlias(p, listingAliases, "id"),
		Title:       firstAlias(p, listingAliases, "title"),
		Location:    firstAlias(p, listingAliases, "location"),
		Description: firstAlias(p, listingAliases, "description"),
		ImageURL:    firstAlias(p, listingAliases, "image"),
		Architect:   firstAlias(p, listingAliases, "architect"),
	}
	if l.ID == "" || l.Title == "" {
		return domain.Listing{}, fmt.Errorf("%w: listing without id or title", domain.ErrValidation)
	}

	raw := firstAlias(p, listingAliases, "style")
	style, ok := domain.ParseStyle(raw)
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: listing %s has unknown style %q", domain.ErrValidation, l.ID, raw)
	}
	l.Style = style

	price, _ := getFloatFlexible(p, "price", "price.amount", "asking_price")
	if price <= 0 {
		return domain.Listing{}, fmt.Errorf("%w: listing %s has no price", domain.ErrValidation, l.ID)
	}
	l.Price = int64(price)

	if v, ok := getFloatFlexible(p, "year", "year_built", "yearBuilt"); ok {
		l.Year = int(v)
	}
	l.Sqft, _ = getFloatFlexible(p, "sqft", "floor_area", "floorArea", "area")
	if v, ok := getFloatFlexible(p, "bedrooms", "beds"); ok {
		l.Bedrooms = int(v)
	}
	l.Bathrooms, _ = getFloatFlexible(p, "bathrooms", "baths")
	l.Featured, _ = lookupAny(p, "featured").(bool)

	l.GalleryImages = firstSliceStrings(p, "galleryImages", "gallery_images", "gallery", "images", "photos")
	if l.GalleryImages == nil {
		l.GalleryImages = []string{}
	}
	if l.ImageURL == "" && len(l.GalleryImages) > 0 {
		l.ImageURL = l.GalleryImages[0]
	}

	score := func(paths ...string) float64 {
		v, _ := getFloatFlexible(p, paths...)
		return clampScore(v)
	}
	l.Ratings = domain.Ratings{
		Architecture: score("ratings.architecture", "scores.architecture"),
		Interior:     score("ratings.interior", "scores.interior"),
		Landscape:    score("ratings.landscape", "scores.landscape"),
		Overall:      score("ratings.overall", "scores.overall"),
	}
	l.AverageRating = score("averageRating", "average_rating", "rating")
	if v, ok := getFloatFlexible(p, "reviewCount", "review_count"); ok && v > 0 {
		l.ReviewCount = int(v)
	}
	return l, nil
}

/********** reviews mapper **********/

// mapReviews converts feed reviews for one listing, skipping records that
// would fail submission validation.
func mapReviews(listingID string, in []map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		rv := domain.Review{
			ListingID: listingID,
			UserID:    firstAlias(r, reviewAliases, "user_id"),
			Username:  firstAlias(r, reviewAliases, "username"),
			Avatar:    firstAlias(r, reviewAliases, "avatar"),
			Comment:   firstAlias(r, reviewAliases, "comment"),
		}
		rv.Rating, _ = getFloatFlexible(r, reviewAliases["rating"]...)
		if t, ok := parseDate(firstAlias(r, reviewAliases, "date")); ok {
			rv.CreatedAt = t
		}

		if err := ValidateDraft(domain.ReviewDraft{Rating: rv.Rating, Comment: rv.Comment}); err != nil {
			log.Warn().Err(err).Str("listing_id", listingID).Msg("feed review skipped")
			continue
		}

		// Prefer explicit id; else synthesize a stable hash so re-ingestion upserts.
		if id := firstAlias(r, reviewAliases, "id"); id != "" {
			rv.ID = id
		} else {
			sig := strings.Join([]string{
				listingID, rv.UserID, rv.Username, rv.Comment,
				strconv.FormatFloat(rv.Rating, 'f', 3, 64),
			}, "|")
			sum := sha1.Sum([]byte(sig))
			rv.ID = "feed-" + hex.EncodeToString(sum[:])
		}
		out = append(out, rv)
	}
	return out
}

package mysql

const listingColumns = `
  id, title, location, description, price, image_url, gallery, architect,
  year_built, sqft, bedrooms, bathrooms, style, featured,
  r_architecture, r_interior, r_landscape, r_overall,
  average_rating, review_count`

const upsertListingSQL = `
INSERT INTO listings
  (` + listingColumns + `)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title          = VALUES(title),
  location       = VALUES(location),
  description    = VALUES(description),
  price          = VALUES(price),
  image_url      = VALUES(image_url),
  gallery        = VALUES(gallery),
  architect      = VALUES(architect),
  year_built     = VALUES(year_built),
  sqft           = VALUES(sqft),
  bedrooms       = VALUES(bedrooms),
  bathrooms      = VALUES(bathrooms),
  style          = VALUES(style),
  featured       = VALUES(featured),
  r_architecture = VALUES(r_architecture),
  r_interior     = VALUES(r_interior),
  r_landscape    = VALUES(r_landscape),
  r_overall      = VALUES(r_overall),
  average_rating = VALUES(average_rating),
  review_count   = VALUES(review_count),
  updated_at     = CURRENT_TIMESTAMP
`

const insertReviewsPrefix = "INSERT INTO reviews\n  (id, listing_id, user_id, username, avatar, rating, comment, created_at)\nVALUES "

// Reviews are append-only; re-ingesting the same id keeps the stored row.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE id = id"

const insertReviewSQL = `
INSERT INTO reviews
  (id, listing_id, user_id, username, avatar, rating, comment, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const insertMissSQL = `
INSERT INTO ingest_misses (id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// seq preserves the order listings were first loaded in.
const listListingsSQL = `SELECT` + listingColumns + `
FROM listings
ORDER BY seq`

const getListingSQL = `SELECT` + listingColumns + `
FROM listings
WHERE id = ?`

const listReviewsSQL = `
SELECT id, listing_id, user_id, username, avatar, rating, comment, created_at
FROM reviews
WHERE listing_id = ?
ORDER BY created_at DESC, seq DESC`

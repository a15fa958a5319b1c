package mysql

const upsertPlanSQL = `
INSERT INTO travel_plans
  (id, title, category, price_label, price, duration_days, description, images, includes,
   is_visible, departure_date, return_date, country, city, regime, traveler_types, amenities)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title          = VALUES(title),
  category       = VALUES(category),
  price_label    = VALUES(price_label),
  price          = VALUES(price),
  duration_days  = VALUES(duration_days),
  description    = VALUES(description),
  images         = VALUES(images),
  includes       = VALUES(includes),
  is_visible     = VALUES(is_visible),
  departure_date = VALUES(departure_date),
  return_date    = VALUES(return_date),
  country        = VALUES(country),
  city           = VALUES(city),
  regime         = VALUES(regime),
  traveler_types = VALUES(traveler_types),
  amenities      = VALUES(amenities),
  updated_at     = CURRENT_TIMESTAMP
`

// A NULL id lets AUTO_INCREMENT assign one; the question is the natural key.
const upsertFAQSQL = `
INSERT INTO faqs (id, question, answer, category)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  answer     = VALUES(answer),
  category   = VALUES(category),
  updated_at = CURRENT_TIMESTAMP
`

// contact_info holds a single row with id 1.
const upsertContactSQL = `
INSERT INTO contact_info (id, phone, email, address, whatsapp_message)
VALUES (1, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  phone            = VALUES(phone),
  email            = VALUES(email),
  address          = VALUES(address),
  whatsapp_message = VALUES(whatsapp_message),
  updated_at       = CURRENT_TIMESTAMP
`

const insertMissSQL = `
INSERT INTO sync_misses (resource, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Hidden plans are returned too; visibility is filtered where it is used.
const listPlansSQL = `
SELECT
  id, title, category, price_label, price, duration_days, description,
  images, includes, is_visible, departure_date, return_date,
  country, city, regime, traveler_types, amenities
FROM travel_plans
ORDER BY id
`

const listFAQsSQL = `
SELECT id, question, answer, category
FROM faqs
ORDER BY category, id
`

const getContactSQL = `
SELECT phone, email, address, whatsapp_message
FROM contact_info
WHERE id = 1
`

package repos

// SchemaVersion is the newest version in Migrations.
const SchemaVersion int64 = 1

const TableProducts = "products"

// Column names of the products table.
const (
	ColID        = "id"
	ColName      = "name"
	ColQuantity  = "quantity"
	ColPrice     = "price"
	ColImageURI  = "image_uri"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
)

const ProductsTableSchema = `
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  price REAL NOT NULL DEFAULT 0.0 CHECK (price >= 0),
  image_uri TEXT NULL,
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);`

const ProductsIndexes = `
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_products_updated_at ON products(updated_at DESC);`

const CompleteSchema = ProductsTableSchema + "\n" + ProductsIndexes

// Migrations maps a schema version to the SQL that reaches it from the
// previous version. Entries are additive only.
var Migrations = map[int64]string{
	1: CompleteSchema,
}

// Migration returns the SQL for version, or "" if there is none.
func Migration(version int64) string {
	return Migrations[version]
}

// DropAll removes every table. Development resets only.
const DropAll = `DROP TABLE IF EXISTS products;`

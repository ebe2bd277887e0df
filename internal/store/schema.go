package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);
`

const (
	stateKey       = "state"
	rolloverPrefix = "rollover-"
)

func rolloverKey(monthKey string) string {
	return rolloverPrefix + monthKey
}

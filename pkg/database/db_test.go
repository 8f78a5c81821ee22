package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithSessionParams(t *testing.T) {
	base := "postgres://u:p@localhost:5432/db"

	assert.Equal(t, base, withSessionParams(Config{DSN: base}))
	assert.Equal(t,
		base+"?options=-c%20TimeZone%3DUTC",
		withSessionParams(Config{DSN: base, TimeZone: "UTC"}))
	assert.Equal(t,
		base+"?sslmode=disable&options=-c%20TimeZone%3DUTC%20-c%20client_encoding%3DUTF8",
		withSessionParams(Config{DSN: base + "?sslmode=disable", TimeZone: "UTC", ClientEncoding: "UTF8"}))
}

func TestWithSessionParamsKeywordDSN(t *testing.T) {
	base := "host=localhost port=5432 user=u dbname=db sslmode=disable"

	assert.Equal(t, base, withSessionParams(Config{DSN: base}))
	assert.Equal(t,
		base+" options='-c TimeZone=Asia/Jakarta -c client_encoding=UTF8'",
		withSessionParams(Config{DSN: base, TimeZone: "Asia/Jakarta", ClientEncoding: "UTF8"}))
	assert.Equal(t,
		base+` options='-c TimeZone=it\'s'`,
		withSessionParams(Config{DSN: base, TimeZone: "it's"}))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_CONNS", "12")
	cfg := ConfigFromEnv()
	assert.Contains(t, cfg.DSN, "localhost:5432")
	assert.Equal(t, 12, cfg.MaxConns)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNEscapaCredenciales(t *testing.T) {
	db := DBConfig{
		Host: "localhost", Port: 5432,
		User: "usuario", Password: "p@ss:w/rd",
		DBName: "stock_ledger", SSLMode: "disable",
	}
	dsn := db.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd", "la contraseña va URL-encoded")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionStringPrefiereDatabaseURL(t *testing.T) {
	db := DBConfig{DatabaseURL: "postgres://a:b@remoto:5432/x", Host: "localhost"}
	assert.Equal(t, "postgres://a:b@remoto:5432/x", db.ConnectionString())
}

func TestHTTPAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", HTTPConfig{Host: "0.0.0.0", Port: 8080}.Addr())
}

func TestLoadDefaultsDeSecuencias(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	// Los cuatro tipos de comprobante siempre quedan configurados.
	for kind, prefix := range map[string]string{
		"stock_in":   "SI",
		"stock_out":  "SO",
		"transfer":   "TR",
		"production": "PR",
	} {
		spec, ok := cfg.Sequences.Spec(kind)
		require.True(t, ok, "secuencia %s sin configurar", kind)
		assert.Equal(t, prefix, spec.Prefix)
		assert.Equal(t, 5, spec.Length)
	}

	_, ok := cfg.Sequences.Spec("sku:inexistente")
	assert.False(t, ok)
}

package sqlmarkup_test

import (
	"testing"

	"github.com/leporo/sqlmarkup"
)

const benchTemplate = `SELECT id, name, 'literal ? :x' AS lit
FROM users
WHERE status = :status
{{age_in: AND age IN (:ages)}}
{{name: AND (name = :name OR alias = :name)}}
{{order: ORDER BY id}}`

func newBenchCompiler(opts ...sqlmarkup.Option) *sqlmarkup.Compiler {
	c := sqlmarkup.New(opts...)
	c.Register("age_in", sqlmarkup.Int().Set("ages", []int{18, 24, 36, 48}))
	c.Register("name", map[string]interface{}{"name": "John"})
	c.RegisterSQL("order", "ORDER BY {{field:id}} LIMIT ?", []interface{}{10})
	c.Enable("field")
	return c
}

var benchBind = map[string]interface{}{"status": "active"}

func BenchmarkCompile(b *testing.B) {
	c := newBenchCompiler()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Compile(benchTemplate, benchBind)
	}
}

func BenchmarkCompileNoCache(b *testing.B) {
	c := newBenchCompiler(sqlmarkup.WithCacheSize(-1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Compile(benchTemplate, benchBind)
	}
}

func BenchmarkCompilePositional(b *testing.B) {
	c := sqlmarkup.New()
	bind := []interface{}{1, []int{1, 2, 3}, "x"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = c.Compile("SELECT * FROM t WHERE a = ? AND b IN (?) AND c = ?", bind)
	}
}

func BenchmarkPreparePostgreSQL(b *testing.B) {
	c := newBenchCompiler(sqlmarkup.WithDialect(sqlmarkup.PostgreSQL))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Prepare(benchTemplate, benchBind)
	}
}

func BenchmarkRegister(b *testing.B) {
	c := sqlmarkup.New()
	for i := 0; i < b.N; i++ {
		_ = c.Register("age_in", sqlmarkup.Int([]int{18, 24, 36}))
	}
}

package sqlite

import "strings"

// pragma is applied by the driver to every new pooled connection.
type pragma struct {
	name  string
	value string
}

// connectionPragmas make concurrent writers wait up to five seconds for the
// database lock instead of failing with SQLITE_BUSY, and let readers proceed
// while a write is in progress.
var connectionPragmas = []pragma{
	{name: "busy_timeout", value: "5000"},
	{name: "journal_mode", value: "WAL"},
}

// ConfigureDSN appends the connection pragmas to dsn as _pragma query
// parameters. Pragmas the caller already set are left alone.
func ConfigureDSN(dsn string) string {
	var b strings.Builder
	b.WriteString(dsn)

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range connectionPragmas {
		if strings.Contains(dsn, p.name) {
			continue
		}
		b.WriteString(sep + "_pragma=" + p.name + "(" + p.value + ")")
		sep = "&"
	}
	return b.String()
}

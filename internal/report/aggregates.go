package report

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/aadex/aadex-go/internal/database"
	"github.com/aadex/aadex-go/internal/frame"
)

// Columns of the attack table the canned aggregates group by.
const (
	yearColumn     = "Year"
	typeColumn     = "Attack Type"
	propertyColumn = "Violated Security Property"
)

var yearRE = regexp.MustCompile(`\d{4}`)

// GroupCount is one row of a count aggregate.
type GroupCount struct {
	Key   string
	Count int
}

// Aggregates runs the canned reports against the attack table: a row
// sample, counts by year, by attack type, and by violated security
// property. A failing query is logged and aborts the remaining
// queries of this stage only; the caller proceeds to export.
func Aggregates(db *database.DB, log *Logger, tableName string, sample, top int) {
	log.Section("AGGREGATE REPORTS")

	if err := runAggregates(db, log, tableName, sample, top); err != nil {
		log.Logf("Query error: %v", err)
	}
}

func runAggregates(db *database.DB, log *Logger, tableName string, sample, top int) error {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", database.QuoteIdent(tableName), sample)
	f, err := frame.Query(db.DB, query)
	if err != nil {
		return err
	}
	log.Blank()
	log.Logf("First %d attacks:", sample)
	log.Logf("%s", f)

	byYear, err := countBy(db.DB, tableName, yearColumn, false, 0)
	if err != nil {
		return err
	}
	log.Blank()
	log.Section("Attacks by Year:")
	logGroups(log, yearColumn, normalizeYears(byYear))

	byType, err := countBy(db.DB, tableName, typeColumn, true, top)
	if err != nil {
		return err
	}
	log.Blank()
	log.Section(fmt.Sprintf("Top %d Attack Types:", top))
	logGroups(log, typeColumn, byType)

	byProperty, err := countBy(db.DB, tableName, propertyColumn, true, top)
	if err != nil {
		return err
	}
	log.Blank()
	log.Section("Security Properties Violated:")
	logGroups(log, propertyColumn, byProperty)

	return nil
}

// countBy groups the table by one column and counts rows per group.
// With byCount true the result is ordered by descending count and
// capped at limit, otherwise it is ordered by the group key.
func countBy(db *sql.DB, tableName, column string, byCount bool, limit int) ([]GroupCount, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s",
		database.QuoteIdent(column),
		database.QuoteIdent(tableName),
		database.QuoteIdent(column))
	if byCount {
		query += " ORDER BY COUNT(*) DESC"
	} else {
		query += fmt.Sprintf(" ORDER BY %s", database.QuoteIdent(column))
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	defer rows.Close()

	var groups []GroupCount
	for rows.Next() {
		var key sql.NullString
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("failed to scan group count: %w", err)
		}
		groups = append(groups, GroupCount{Key: key.String, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// normalizeYears folds free-text year values ("2015 (est.)", "ca. 2016")
// down to their first 4-digit run and re-sums the counts per year.
// Values without a 4-digit run land in an unnamed bucket.
func normalizeYears(groups []GroupCount) []GroupCount {
	sums := make(map[string]int)
	for _, g := range groups {
		sums[yearRE.FindString(g.Key)] += g.Count
	}

	normalized := make([]GroupCount, 0, len(sums))
	for year, count := range sums {
		normalized = append(normalized, GroupCount{Key: year, Count: count})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Key < normalized[j].Key
	})

	return normalized
}

// logGroups writes a two-column key/count listing aligned on the
// longest key.
func logGroups(log *Logger, header string, groups []GroupCount) {
	width := utf8.RuneCountInString(header)
	for _, g := range groups {
		if n := utf8.RuneCountInString(g.Key); n > width {
			width = n
		}
	}

	log.Logf("%-*s  Count", width, header)
	for _, g := range groups {
		log.Logf("%-*s  %d", width, g.Key, g.Count)
	}
}

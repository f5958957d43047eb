package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/lib/pq"
)

// pollQueries holds the statements for one dialect. Day columns come from the
// fixed domain.DayColumns table, never from caller input.
type pollQueries struct {
	create         string
	getByMessageID string
	list           string
	listIDs        string
	delete         string
	addMember      map[domain.Day]string
	removeMember   map[domain.Day]string
}

var (
	postgresQueries = buildPostgresQueries()
	sqliteQueries   = buildSQLiteQueries()
)

func queriesFor(dialect Dialect) *pollQueries {
	if dialect == Postgres {
		return postgresQueries
	}
	return sqliteQueries
}

func dayColumnList() string {
	cols := make([]string, 0, len(domain.PollDays))
	for _, day := range domain.PollDays {
		cols = append(cols, domain.DayColumns[day])
	}
	return strings.Join(cols, ", ")
}

func buildPostgresQueries() *pollQueries {
	columns := dayColumnList()
	q := &pollQueries{
		create: `
			INSERT INTO messages (message_id, ` + columns + `)
			VALUES ($1, '{}', '{}', '{}', '{}', '{}', '{}')
			ON CONFLICT (message_id) DO NOTHING
		`,
		getByMessageID: `SELECT message_id, ` + columns + ` FROM messages WHERE message_id = $1`,
		list:           `SELECT message_id, ` + columns + ` FROM messages ORDER BY message_id`,
		listIDs:        `SELECT message_id FROM messages ORDER BY message_id`,
		delete:         `DELETE FROM messages WHERE message_id = $1`,
		addMember:      make(map[domain.Day]string),
		removeMember:   make(map[domain.Day]string),
	}

	for day, col := range domain.DayColumns {
		q.addMember[day] = fmt.Sprintf(`
			INSERT INTO messages (message_id, %[1]s) VALUES ($1, ARRAY[$2::BIGINT])
			ON CONFLICT (message_id) DO UPDATE
				SET %[1]s = CASE
					WHEN $2::BIGINT = ANY(COALESCE(messages.%[1]s, '{}')) THEN messages.%[1]s
					ELSE array_append(COALESCE(messages.%[1]s, '{}'), $2::BIGINT)
				END
		`, col)
		q.removeMember[day] = fmt.Sprintf(
			`UPDATE messages SET %[1]s = array_remove(%[1]s, $2::BIGINT) WHERE message_id = $1`, col)
	}

	return q
}

func buildSQLiteQueries() *pollQueries {
	columns := dayColumnList()
	q := &pollQueries{
		create: `
			INSERT INTO messages (message_id, ` + columns + `)
			VALUES (?, '[]', '[]', '[]', '[]', '[]', '[]')
			ON CONFLICT (message_id) DO NOTHING
		`,
		getByMessageID: `SELECT message_id, ` + columns + ` FROM messages WHERE message_id = ?`,
		list:           `SELECT message_id, ` + columns + ` FROM messages ORDER BY message_id`,
		listIDs:        `SELECT message_id FROM messages ORDER BY message_id`,
		delete:         `DELETE FROM messages WHERE message_id = ?`,
		addMember:      make(map[domain.Day]string),
		removeMember:   make(map[domain.Day]string),
	}

	for day, col := range domain.DayColumns {
		q.addMember[day] = fmt.Sprintf(`
			INSERT INTO messages (message_id, %[1]s) VALUES (?1, json_array(?2))
			ON CONFLICT (message_id) DO UPDATE
				SET %[1]s = CASE
					WHEN EXISTS (SELECT 1 FROM json_each(messages.%[1]s) WHERE value = ?2) THEN messages.%[1]s
					ELSE json_insert(messages.%[1]s, '$[#]', ?2)
				END
		`, col)
		q.removeMember[day] = fmt.Sprintf(`
			UPDATE messages
			SET %[1]s = (SELECT json_group_array(value) FROM json_each(messages.%[1]s) WHERE value <> ?2)
			WHERE message_id = ?1
		`, col)
	}

	return q
}

// memberSet scans a day column from either backend: a PostgreSQL BIGINT[]
// literal ("{1,2}") or a SQLite JSON array ("[1,2]").
type memberSet []int64

func (s *memberSet) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = memberSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported member set type %T", src)
	}

	if len(raw) > 0 && raw[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(raw, &ids); err != nil {
			return fmt.Errorf("failed to unmarshal member set: %w", err)
		}
		*s = normalize(ids)
		return nil
	}

	var arr pq.Int64Array
	if err := arr.Scan(raw); err != nil {
		return fmt.Errorf("failed to scan member set: %w", err)
	}
	*s = normalize(arr)
	return nil
}

func normalize(ids []int64) memberSet {
	if len(ids) == 0 {
		return memberSet{}
	}
	return memberSet(ids)
}

package mssql

import (
	"fmt"
	"strings"

	"github.com/olusolaa/sqlschema-compare/internal/core/domain"
)

const listObjectsTemplate = `
SELECT
    s.name                   AS schema_name,
    o.name                   AS object_name,
    RTRIM(o.type)            AS type_code,
    o.object_id              AS object_id,
    o.parent_object_id       AS parent_object_id,
    o.create_date            AS create_date,
    o.modify_date            AS modify_date,
    m.uses_ansi_nulls        AS uses_ansi_nulls,
    m.uses_quoted_identifier AS uses_quoted_identifier
FROM sys.objects AS o
JOIN sys.schemas AS s ON s.schema_id = o.schema_id
JOIN (VALUES %s) AS t (type_code, sort_group)
    ON t.type_code = RTRIM(o.type) COLLATE DATABASE_DEFAULT
LEFT JOIN sys.sql_modules AS m ON m.object_id = o.object_id
WHERE o.is_ms_shipped = 0
ORDER BY t.sort_group, s.name, o.name`

var listObjectsQuery = buildListObjectsQuery()

// buildListObjectsQuery inlines the type-code table so listing and ordering happen in one round trip.
func buildListObjectsQuery() string {
	codes := domain.TypeCodes()
	values := make([]string, len(codes))
	for i, code := range codes {
		values[i] = fmt.Sprintf("('%s', %d)", code, domain.EnumerationGroup(code))
	}
	return fmt.Sprintf(listObjectsTemplate, strings.Join(values, ", "))
}

const columnsQuery = `
SELECT
    c.name                             AS column_name,
    TYPE_NAME(c.user_type_id)          AS data_type,
    c.max_length                       AS max_length,
    c.precision                        AS precision,
    c.scale                            AS scale,
    c.is_nullable                      AS is_nullable,
    c.is_identity                      AS is_identity,
    CAST(ic.seed_value AS bigint)      AS identity_seed,
    CAST(ic.increment_value AS bigint) AS identity_increment,
    cc.definition                      AS computed_definition,
    dc.definition                      AS default_definition,
    c.column_id                        AS column_id
FROM sys.columns AS c
LEFT JOIN sys.identity_columns AS ic ON ic.object_id = c.object_id AND ic.column_id = c.column_id
LEFT JOIN sys.computed_columns AS cc ON cc.object_id = c.object_id AND cc.column_id = c.column_id
LEFT JOIN sys.default_constraints AS dc ON dc.object_id = c.default_object_id
WHERE c.object_id = @p1
ORDER BY c.column_id`

const indexesQuery = `
SELECT
    i.name                 AS index_name,
    i.type_desc            AS index_kind,
    i.is_unique            AS is_unique,
    i.is_primary_key       AS is_primary_key,
    i.is_unique_constraint AS is_unique_constraint,
    i.fill_factor          AS fill_factor,
    i.allow_row_locks      AS allow_row_locks,
    i.allow_page_locks     AS allow_page_locks,
    i.ignore_dup_key       AS ignore_dup_key,
    i.is_disabled          AS is_disabled,
    i.filter_definition    AS filter_definition,
    col.name               AS column_name,
    ic.is_descending_key   AS is_descending_key,
    ic.is_included_column  AS is_included_column
FROM sys.indexes AS i
JOIN sys.index_columns AS ic ON ic.object_id = i.object_id AND ic.index_id = i.index_id
JOIN sys.columns AS col ON col.object_id = ic.object_id AND col.column_id = ic.column_id
WHERE i.object_id = @p1 AND i.index_id > 0 AND i.is_hypothetical = 0
ORDER BY i.index_id, ic.is_included_column, ic.key_ordinal, ic.index_column_id`

const foreignKeysQuery = `
SELECT
    fk.name                           AS fk_name,
    rs.name                           AS referenced_schema,
    rt.name                           AS referenced_table,
    pc.name                           AS parent_column,
    rc.name                           AS referenced_column,
    fk.delete_referential_action_desc AS on_delete,
    fk.update_referential_action_desc AS on_update,
    fk.is_disabled                    AS is_disabled,
    fk.is_not_trusted                 AS is_not_trusted
FROM sys.foreign_keys AS fk
JOIN sys.foreign_key_columns AS fkc ON fkc.constraint_object_id = fk.object_id
JOIN sys.objects AS rt ON rt.object_id = fk.referenced_object_id
JOIN sys.schemas AS rs ON rs.schema_id = rt.schema_id
JOIN sys.columns AS pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
JOIN sys.columns AS rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
WHERE fk.parent_object_id = @p1
ORDER BY fk.name, fkc.constraint_column_id`

const definitionQuery = `
SELECT
    OBJECT_DEFINITION(o.object_id) AS definition,
    m.uses_ansi_nulls              AS uses_ansi_nulls,
    m.uses_quoted_identifier       AS uses_quoted_identifier
FROM sys.objects AS o
LEFT JOIN sys.sql_modules AS m ON m.object_id = o.object_id
WHERE o.object_id = @p1`

const listDatabasesQuery = `
SELECT name
FROM sys.databases
WHERE database_id > 4 AND state_desc = 'ONLINE'
ORDER BY name`

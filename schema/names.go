package schema

import (
	"slices"
	"strconv"
	"strings"
)

var columnNames = map[string][]string{
	"achievement":           {"achievementid"},
	"itempool":              {"weight", "pool"},
	"itempoollist":          {"weight", "pool"},
	"rarity":                {"weight", "color"},
	"manufacturer":          {"alias", "id"},
	"aim_assist_parameters": {"value", "min", "max"},
	"preferredparts":        {"weight", "category"},
	"loot_config":           {"weight", "pool", "conditions"},
}

// ColumnNames returns the known value column names of a table type, or nil.
// Lookup is case-insensitive.
func ColumnNames(typeName string) []string {
	return slices.Clone(columnNames[strings.ToLower(typeName)])
}

// ColumnName returns the name of value column i of a table type, falling
// back to "field_<i>" for unknown types and columns.
func ColumnName(typeName string, i int) string {
	names := columnNames[strings.ToLower(typeName)]
	if i >= 0 && i < len(names) {
		return names[i]
	}

	return "field_" + strconv.Itoa(i)
}

// GroupsByEntryName reports whether entries of a table type are grouped by
// pool-like entry names rather than framed by a fixed column count.
func GroupsByEntryName(typeName string) bool {
	switch strings.ToLower(typeName) {
	case "itempool", "itempoollist":
		return true
	default:
		return false
	}
}

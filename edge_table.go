package bikestress

import (
	"sort"
	"strconv"
)

// Derived columns of the enriched edge table
const (
	COLUMN_SOURCE               = "u"
	COLUMN_TARGET               = "v"
	COLUMN_KEY                  = "key"
	COLUMN_LENGTH               = "length"
	COLUMN_COMPOSITE            = "composite_score"
	COLUMN_LANES                = "lanes_int"
	COLUMN_LANES_SCORE          = "lanes_int_score"
	COLUMN_SPEED                = "maxspeed_int"
	COLUMN_SPEED_SCORE          = "maxspeed_int_score"
	COLUMN_SEPARATION           = "separation_level"
	COLUMN_SEPARATION_SCORE     = "separation_level_score"
	COLUMN_CLASSIFICATION       = "street_classification"
	COLUMN_CLASSIFICATION_SCORE = "street_classification_score"
	COLUMN_STREET_TYPE          = "street_type"
	COLUMN_WIDTH                = "width_float"
	COLUMN_WIDTH_HALF           = "width_half"
)

// EdgeTable is tabular view of enriched edges: original columns plus derived ones, alphabetical column order.
// Unknown values are empty cells
type EdgeTable struct {
	columns []string
	rows    [][]string
}

// NewEdgeTable builds table over edges of the graph in insertion order
func NewEdgeTable(graph *Graph) *EdgeTable {
	columnsSet := map[string]struct{}{
		COLUMN_SOURCE: {},
		COLUMN_TARGET: {},
		COLUMN_KEY:    {},
		COLUMN_LENGTH: {},
	}
	records := make([]map[string]string, 0, graph.EdgesNum())
	for _, edge := range graph.Edges() {
		record := edgeRecord(edge)
		for column := range record {
			columnsSet[column] = struct{}{}
		}
		records = append(records, record)
	}
	columns := make([]string, 0, len(columnsSet))
	for column := range columnsSet {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	rows := make([][]string, len(records))
	for i, record := range records {
		row := make([]string, len(columns))
		for j, column := range columns {
			row[j] = record[column]
		}
		rows[i] = row
	}
	return &EdgeTable{columns: columns, rows: rows}
}

func edgeRecord(edge *Edge) map[string]string {
	record := make(map[string]string, len(edge.Attributes)+16)
	for key, value := range edge.Attributes {
		record[key] = value.String()
	}
	record[COLUMN_SOURCE] = strconv.FormatInt(int64(edge.Source), 10)
	record[COLUMN_TARGET] = strconv.FormatInt(int64(edge.Target), 10)
	record[COLUMN_KEY] = strconv.Itoa(edge.Key)
	record[COLUMN_LENGTH] = strconv.FormatFloat(edge.Length, 'f', -1, 64)
	if !edge.IsScored() {
		return record
	}
	record[COLUMN_COMPOSITE] = edge.CompositeScore.String()
	record[COLUMN_LANES] = edge.Lanes.String()
	record[COLUMN_LANES_SCORE] = edge.LanesScore.String()
	record[COLUMN_SPEED] = edge.Speed.String()
	record[COLUMN_SPEED_SCORE] = edge.SpeedScore.String()
	record[COLUMN_SEPARATION] = edge.Separation.String()
	record[COLUMN_SEPARATION_SCORE] = edge.SeparationScore.String()
	record[COLUMN_CLASSIFICATION] = edge.StreetClass.String()
	record[COLUMN_CLASSIFICATION_SCORE] = edge.ClassificationScore.String()
	record[COLUMN_STREET_TYPE] = edge.StreetType
	record[COLUMN_WIDTH] = edge.Width.String()
	record[COLUMN_WIDTH_HALF] = edge.WidthHalf.String()
	return record
}

// Columns returns column names in alphabetical order
func (table *EdgeTable) Columns() []string {
	return table.columns
}

// Rows returns cells in the order of Columns()
func (table *EdgeTable) Rows() [][]string {
	return table.rows
}

// Column returns index of column or -1
func (table *EdgeTable) Column(name string) int {
	idx := sort.SearchStrings(table.columns, name)
	if idx < len(table.columns) && table.columns[idx] == name {
		return idx
	}
	return -1
}

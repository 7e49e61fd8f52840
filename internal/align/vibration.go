package align

import (
	"strconv"
	"strings"

	"github.com/fieldline/docextract/internal/common"
)

// Health-status indicator columns. Exactly one is 1 per record when the
// status literal matches one recognized keyword (case-sensitive), else
// all three are 0.
const (
	ColNormal         = "Normal"
	ColSatisfactory   = "Satisfactory"
	ColUnsatisfactory = "Unsatisfactory"
)

// Fixed output columns of the unpivoted vibration table.
const (
	ColEquipment      = "Equipment Name"
	ColSubEquipment   = "Sub Equipment"
	ColHealth         = "Health"
	ColDefect         = "Defect"
	ColRecommendation = "Recommendation"
	ColStatus         = "Status"
)

// trailing free-text columns, addressed by offset from the row's end:
// health, defect, recommendation, status.
const trailingColumns = 4

// VibrationConfig locates the structurally significant rows of a
// vibration-report sheet by sentinel cell content, not fixed offsets.
type VibrationConfig struct {
	// HeaderSentinel is the first-column value of the header row; the
	// measurement-date list sits on the row beneath it.
	HeaderSentinel string
	// DirectionSentinel is the first-column value of the row naming the
	// per-axis direction labels. Data rows follow it.
	DirectionSentinel string
}

func (c VibrationConfig) withDefaults() VibrationConfig {
	if c.HeaderSentinel == "" {
		c.HeaderSentinel = "EQUIPMENT"
	}
	if c.DirectionSentinel == "" {
		c.DirectionSentinel = "DIRECTION"
	}
	return c
}

// traversalState is the carry-forward identity while walking data rows:
// an equipment name persists down rows until a new one appears, and the
// sub-equipment resets whenever the equipment changes.
type traversalState struct {
	equipment    string
	subEquipment string
}

func (s *traversalState) advance(equipment, subEquipment string) {
	if equipment != "" && equipment != s.equipment {
		s.equipment = equipment
		s.subEquipment = ""
	}
	if subEquipment != "" {
		s.subEquipment = subEquipment
	}
}

// UnpivotVibration restructures a vibration-report table into one record
// per data row: carried-forward equipment identity, one direction-tagged
// reading per declared measurement date (column key = direction code +
// 1-based date index), one-hot health-status indicators, and the
// free-text trailing columns. Rows without a direction value are
// skipped. Missing sentinel rows abort this table only, with a
// user-facing diagnostic and an empty result.
func UnpivotVibration(rows [][]string, cfg VibrationConfig) ([]map[string]any, error) {
	cfg = cfg.withDefaults()

	headerIdx := findSentinelRow(rows, cfg.HeaderSentinel)
	if headerIdx < 0 {
		return nil, common.SourceUnavailable("header row %q not found", cfg.HeaderSentinel)
	}
	if headerIdx+1 >= len(rows) {
		return nil, common.SourceUnavailable("no date row beneath header row %q", cfg.HeaderSentinel)
	}
	dates := nonEmptyCells(rows[headerIdx+1])
	if len(dates) == 0 {
		return nil, common.SourceUnavailable("date row beneath %q is empty", cfg.HeaderSentinel)
	}

	directionIdx := findSentinelRow(rows, cfg.DirectionSentinel)
	if directionIdx < 0 {
		return nil, common.SourceUnavailable("direction row %q not found", cfg.DirectionSentinel)
	}

	var out []map[string]any
	state := traversalState{}
	for _, row := range rows[directionIdx+1:] {
		rec, ok := unpivotRow(row, dates, &state)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// unpivotRow emits one record for a data row, advancing the carry-forward
// state first so that rows without a fresh name inherit the current one.
// Row layout: equipment, sub-equipment, direction, one reading per date,
// then the four trailing free-text columns.
func unpivotRow(row []string, dates []string, state *traversalState) (map[string]any, bool) {
	state.advance(cell(row, 0), cell(row, 1))

	direction := strings.TrimSpace(cell(row, 2))
	if direction == "" {
		return nil, false
	}
	code := directionCode(direction)

	rec := map[string]any{
		ColEquipment:    state.equipment,
		ColSubEquipment: state.subEquipment,
	}
	for i := range dates {
		rec[code+strconv.Itoa(i+1)] = cell(row, 3+i)
	}

	status := lastCell(row, 1)
	rec[ColNormal], rec[ColSatisfactory], rec[ColUnsatisfactory] = statusIndicators(status)
	rec[ColHealth] = lastCell(row, 4)
	rec[ColDefect] = lastCell(row, 3)
	rec[ColRecommendation] = lastCell(row, 2)
	rec[ColStatus] = status
	return rec, true
}

// statusIndicators maps the status literal to the three mutually
// exclusive indicator columns. Matching is deliberately case-sensitive
// on the exact literals; anything else leaves all three at 0.
func statusIndicators(status string) (normal, satisfactory, unsatisfactory int) {
	switch status {
	case "NORMAL":
		return 1, 0, 0
	case "SATISFACTORY":
		return 0, 1, 0
	case "UNSATISFACTORY":
		return 0, 0, 1
	default:
		return 0, 0, 0
	}
}

// directionCode reduces a direction label to its single-letter tag,
// e.g. "Axial" -> "A", "horizontal" -> "H".
func directionCode(label string) string {
	return strings.ToUpper(label[:1])
}

func findSentinelRow(rows [][]string, sentinel string) int {
	for i, row := range rows {
		if strings.TrimSpace(cell(row, 0)) == sentinel {
			return i
		}
	}
	return -1
}

func nonEmptyCells(row []string) []string {
	var out []string
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			out = append(out, strings.TrimSpace(c))
		}
	}
	return out
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// lastCell addresses a cell by offset from the row's end, 1-based.
func lastCell(row []string, fromEnd int) string {
	return cell(row, len(row)-fromEnd)
}

package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"github.com/venicegeo/sidd-go/record"
	"github.com/venicegeo/sidd-go/sidd"
)

//ProductRecord is one row of the products table: the flattened chip geometry
//of an indexed metadata document.
type ProductRecord struct {
	ProductID  string
	SourceFile string
	IngestedAt time.Time
	ChipRows   sql.NullInt64
	ChipCols   sql.NullInt64
	ULRow      sql.NullFloat64
	ULCol      sql.NullFloat64
	URRow      sql.NullFloat64
	URCol      sql.NullFloat64
	LLRow      sql.NullFloat64
	LLCol      sql.NullFloat64
	LRRow      sql.NullFloat64
	LRCol      sql.NullFloat64
}

//EventRecord is one row of the processing_events table. Seq preserves the
//document order of the events.
type EventRecord struct {
	ProductID           string
	Seq                 int
	ApplicationName     sql.NullString
	AppliedDateTime     pq.NullTime
	InterpolationMethod sql.NullString
	Descriptors         []byte
}

//descriptorJSON is the stored form of one event descriptor. Descriptors keep
//document order and allow duplicate names, so they are stored as a JSON array
//rather than an object.
type descriptorJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

//ProductRecordFromDownstream flattens the chip geometry of a parsed document
//into a product row. A missing chip, or a missing member of the chip, leaves
//the matching columns NULL.
func ProductRecordFromDownstream(productID, sourceFile string, ingestedAt time.Time, downstream *sidd.DownstreamReprocessing) *ProductRecord {
	product := &ProductRecord{
		ProductID:  productID,
		SourceFile: sourceFile,
		IngestedAt: ingestedAt,
	}

	chip := downstream.GeometricChip
	if chip == nil {
		return product
	}

	if chip.ChipSize != nil {
		product.ChipRows = nullInt64(chip.ChipSize.Row)
		product.ChipCols = nullInt64(chip.ChipSize.Col)
	}
	assignCorner(chip.OriginalUpperLeftCoordinate, &product.ULRow, &product.ULCol)
	assignCorner(chip.OriginalUpperRightCoordinate, &product.URRow, &product.URCol)
	assignCorner(chip.OriginalLowerLeftCoordinate, &product.LLRow, &product.LLCol)
	assignCorner(chip.OriginalLowerRightCoordinate, &product.LRRow, &product.LRCol)

	return product
}

//EventRecordsFromDownstream flattens the processing history of a parsed
//document into event rows.
func EventRecordsFromDownstream(productID string, downstream *sidd.DownstreamReprocessing) ([]EventRecord, error) {
	events := make([]EventRecord, 0, len(downstream.ProcessingEvents))

	for idx, event := range downstream.ProcessingEvents {
		row := EventRecord{ProductID: productID, Seq: idx}
		if event.ApplicationName != "" {
			row.ApplicationName = sql.NullString{String: event.ApplicationName, Valid: true}
		}
		if !event.AppliedDateTime.IsZero() {
			row.AppliedDateTime = pq.NullTime{Time: event.AppliedDateTime, Valid: true}
		}
		if event.InterpolationMethod != "" {
			row.InterpolationMethod = sql.NullString{String: event.InterpolationMethod, Valid: true}
		}
		if len(event.Descriptors) > 0 {
			descriptors := make([]descriptorJSON, len(event.Descriptors))
			for i, param := range event.Descriptors {
				descriptors[i] = descriptorJSON{Name: param.Name, Value: param.Value}
			}
			data, err := json.Marshal(descriptors)
			if err != nil {
				return nil, err
			}
			row.Descriptors = data
		}
		events = append(events, row)
	}

	return events, nil
}

//Downstream rebuilds the metadata record from a product row and its event
//rows. Columns that were never populated stay absent in the rebuilt record;
//no construction defaults apply here.
func (p *ProductRecord) Downstream(events []EventRecord) (*sidd.DownstreamReprocessing, error) {
	downstream := &sidd.DownstreamReprocessing{GeometricChip: p.chip()}
	if len(events) == 0 {
		return downstream, nil
	}

	downstream.ProcessingEvents = make([]*sidd.ProcessingEvent, 0, len(events))
	for _, row := range events {
		event := &sidd.ProcessingEvent{}
		if row.ApplicationName.Valid {
			event.ApplicationName = row.ApplicationName.String
		}
		if row.AppliedDateTime.Valid {
			event.AppliedDateTime = record.NormalizeTime(row.AppliedDateTime.Time)
		}
		if row.InterpolationMethod.Valid {
			event.InterpolationMethod = row.InterpolationMethod.String
		}
		if len(row.Descriptors) > 0 {
			var descriptors []descriptorJSON
			if err := json.Unmarshal(row.Descriptors, &descriptors); err != nil {
				return nil, err
			}
			for _, d := range descriptors {
				event.Descriptors = append(event.Descriptors, record.Parameter{Name: d.Name, Value: d.Value})
			}
		}
		downstream.ProcessingEvents = append(downstream.ProcessingEvents, event)
	}

	return downstream, nil
}

//chip rebuilds the chip geometry from the flattened columns. A coordinate
//pair is kept only when both of its columns are populated; a row with no
//populated chip columns at all has no chip.
func (p *ProductRecord) chip() *sidd.GeometricChip {
	chip := sidd.GeometricChip{}
	populated := false

	if p.ChipRows.Valid && p.ChipCols.Valid {
		chip.ChipSize = sidd.NewRowColInt(p.ChipRows.Int64, p.ChipCols.Int64)
		populated = true
	}
	if corner := cornerPair(p.ULRow, p.ULCol); corner != nil {
		chip.OriginalUpperLeftCoordinate = corner
		populated = true
	}
	if corner := cornerPair(p.URRow, p.URCol); corner != nil {
		chip.OriginalUpperRightCoordinate = corner
		populated = true
	}
	if corner := cornerPair(p.LLRow, p.LLCol); corner != nil {
		chip.OriginalLowerLeftCoordinate = corner
		populated = true
	}
	if corner := cornerPair(p.LRRow, p.LRCol); corner != nil {
		chip.OriginalLowerRightCoordinate = corner
		populated = true
	}

	if !populated {
		return nil
	}
	return &chip
}

func cornerPair(row, col sql.NullFloat64) *sidd.RowColDouble {
	if !row.Valid || !col.Valid {
		return nil
	}
	return sidd.NewRowColDouble(row.Float64, col.Float64)
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullFloat64(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func assignCorner(pair *sidd.RowColDouble, row, col *sql.NullFloat64) {
	if pair == nil {
		return
	}
	*row = nullFloat64(pair.Row)
	*col = nullFloat64(pair.Col)
}

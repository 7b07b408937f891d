package engine

import (
	"context"
	"encoding/json"
	"fmt"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"seawatch/internal/marine"
)

// greptimeClient is the slice of the ingester client the writer needs.
// The real greptime.Client satisfies it.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter ingests threat, formation, prediction, and sighting
// rows into GreptimeDB. Tables are auto-created by the ingest path.
type GreptimeDBWriter struct {
	client greptimeClient

	sightingTable   string
	threatTable     string
	formationTable  string
	predictionTable string
}

// NewGreptimeDBWriter connects to a GreptimeDB endpoint (host:port) and
// targets the given database.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(endpoint).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect greptimedb: %w", err)
	}
	return &GreptimeDBWriter{
		client:          client,
		sightingTable:   marine.SightingTableName,
		threatTable:     marine.ThreatTableName,
		formationTable:  marine.FormationTableName,
		predictionTable: marine.PredictionTableName,
	}, nil
}

// WriteSighting ingests a single sighting row.
func (w *GreptimeDBWriter) WriteSighting(row marine.SightingRow) error {
	return w.WriteSightings([]marine.SightingRow{row})
}

// WriteSightings ingests a batch of sighting rows.
func (w *GreptimeDBWriter) WriteSightings(rows []marine.SightingRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.sightingTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("cluster_id", types.STRING)
	tbl.AddTagColumn("vessel_id", types.STRING)
	tbl.AddFieldColumn("name", types.STRING)
	tbl.AddFieldColumn("country", types.STRING)
	tbl.AddFieldColumn("type", types.STRING)
	tbl.AddFieldColumn("lat", types.FLOAT64)
	tbl.AddFieldColumn("lon", types.FLOAT64)
	tbl.AddFieldColumn("location", types.STRING)
	tbl.AddFieldColumn("source", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.ClusterID, r.VesselID, r.Name, r.Country, r.Type,
			r.Lat, r.Lon, r.Location, r.Source, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl)
}

// WriteThreat ingests a single threat assessment row.
func (w *GreptimeDBWriter) WriteThreat(row marine.ThreatRow) error {
	return w.WriteThreats([]marine.ThreatRow{row})
}

// WriteThreats ingests a batch of threat assessment rows. Reasoning is
// stored as a JSON column.
func (w *GreptimeDBWriter) WriteThreats(rows []marine.ThreatRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.threatTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("cluster_id", types.STRING)
	tbl.AddTagColumn("vessel_id", types.STRING)
	tbl.AddFieldColumn("score", types.INT64)
	tbl.AddFieldColumn("level", types.STRING)
	tbl.AddFieldColumn("reasoning", types.JSON)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		reasoning, err := jsonList(r.Reasoning)
		if err != nil {
			return err
		}
		if err := tbl.AddRow(r.ClusterID, r.VesselID, int64(r.Score),
			r.Level, reasoning, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl)
}

// WriteFormation ingests a single formation row.
func (w *GreptimeDBWriter) WriteFormation(row marine.FormationRow) error {
	return w.WriteFormations([]marine.FormationRow{row})
}

// WriteFormations ingests a batch of formation rows. Member ids are
// stored as a JSON column.
func (w *GreptimeDBWriter) WriteFormations(rows []marine.FormationRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.formationTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("cluster_id", types.STRING)
	tbl.AddTagColumn("formation_id", types.STRING)
	tbl.AddFieldColumn("type", types.STRING)
	tbl.AddFieldColumn("country", types.STRING)
	tbl.AddFieldColumn("member_ids", types.JSON)
	tbl.AddFieldColumn("center_lat", types.FLOAT64)
	tbl.AddFieldColumn("center_lon", types.FLOAT64)
	tbl.AddFieldColumn("radius_km", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		members, err := jsonList(r.MemberIDs)
		if err != nil {
			return err
		}
		if err := tbl.AddRow(r.ClusterID, r.FormationID, r.Type, r.Country,
			members, r.CenterLat, r.CenterLon, r.RadiusKm, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl)
}

// WritePrediction ingests a single predicted position row.
func (w *GreptimeDBWriter) WritePrediction(row marine.PredictionRow) error {
	return w.WritePredictions([]marine.PredictionRow{row})
}

// WritePredictions ingests a batch of predicted position rows.
func (w *GreptimeDBWriter) WritePredictions(rows []marine.PredictionRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.predictionTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("cluster_id", types.STRING)
	tbl.AddTagColumn("vessel_id", types.STRING)
	tbl.AddFieldColumn("lat", types.FLOAT64)
	tbl.AddFieldColumn("lon", types.FLOAT64)
	tbl.AddFieldColumn("confidence", types.FLOAT64)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.ClusterID, r.VesselID, r.Lat, r.Lon,
			r.Confidence, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl)
}

func (w *GreptimeDBWriter) write(tbl *table.Table) error {
	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		return fmt.Errorf("greptimedb write: %w", err)
	}
	return nil
}

// jsonList encodes a string slice for a JSON column. Nil encodes as an
// empty list, not null.
func jsonList(vals []string) (string, error) {
	if vals == nil {
		vals = []string{}
	}
	data, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package association

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCSVThenReadCSV_RoundTrips(t *testing.T) {
	table := NewTable()
	table.Append(Row{
		SourceNode: "a", DestinationNode: "b", RouteKey: "a_b", JobID: 1, ForecastID: 2,
		TransferTimeS: 3600, ThroughputBps: 1e9, HostJoules: 10, LinkJoules: 5,
		TotalJoules: 15, CarbonEmissionsG: 2.5,
	})

	path := filepath.Join(t.TempDir(), "associations_df.csv")
	if err := WriteCSV(path, table); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got.Rows))
	}
	row := got.Rows[0]
	want := table.Rows[0]
	if row != want {
		t.Errorf("round-tripped row = %+v, want %+v", row, want)
	}
}

func TestReadCSV_RejectsMalformedNumericField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "source_node,destination_node,route_key,job_id,forecast_id,transfer_time_s,throughput_bps,host_joules,link_joules,total_joules,carbon_emissions_g\n" +
		"a,b,a_b,1,0,not-a-number,1,1,1,1,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Errorf("expected error for malformed transfer_time_s")
	}
}

// Command diffviewer serves a run's report over HTTP as JSON, replacing the
// teacher's hand-rolled static file server (server.go) with routed API
// endpoints a viewer can poll. Collector snapshots and tracking data are not
// served.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/janeusz2000/DcoefficientRayTracer/report"
)

func main() {
	reportPath := flag.String("report", "", "path to a report JSON file produced by raytrace (required)")
	addr := flag.String("addr", ":8080", "address to listen on")
	flag.Parse()

	if *reportPath == "" {
		log.Fatal("diffviewer: -report is required")
	}

	rep, err := loadReport(*reportPath)
	if err != nil {
		log.Fatalf("diffviewer: %v", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/report", reportHandler(rep)).Methods(http.MethodGet)
	router.HandleFunc("/api/report/{frequency}", frequencyHandler(rep)).Methods(http.MethodGet)

	log.Printf("diffviewer listening on %s", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		log.Fatalf("diffviewer: %v", err)
	}
}

func loadReport(path string) (report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Report{}, err
	}
	defer f.Close()
	return report.Decode(f)
}

func reportHandler(rep report.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rep)
	}
}

func frequencyHandler(rep report.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		freqParam := mux.Vars(r)["frequency"]
		for _, e := range rep.Coefficient {
			if formatFreq(e.Frequency) == freqParam {
				writeJSON(w, e)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func formatFreq(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

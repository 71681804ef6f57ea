package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deanrtaylor1/textanalyzer/analyzer"
	"github.com/deanrtaylor1/textanalyzer/freq"
	"github.com/deanrtaylor1/textanalyzer/lexer"
	"github.com/deanrtaylor1/textanalyzer/util"
	webcrawler "github.com/deanrtaylor1/textanalyzer/web-crawler"
)

type Response struct {
	Message string             `json:"message"`
	Data    []freq.RankedEntry `json:"data"`
}

type ReportsResponse struct {
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

// Server route to analyze the request body as raw text and return the ranked stems
func handleApiAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		return
	}

	stats := freq.IngestTokens(lexer.StemContent(string(requestBodyBytes)))
	entries := freq.Rank(stats)
	if len(entries) > freq.DefaultTopN {
		entries = entries[:freq.DefaultTopN]
	}

	elapsed := time.Since(start)
	response := &Response{
		Message: fmt.Sprintf("Analyzed %d stems in %d Ms", stats.TotalCount, elapsed.Milliseconds()),
		Data:    entries,
	}
	jsonBytes, err := json.Marshal(response)
	if err != nil {
		log.Println("Unable to marshal json: ", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(jsonBytes)
	if err != nil {
		log.Println(err)
		return
	}

	log.Println("------------------")
	log.Println(util.TerminalCyan+"Analyzed ", stats.TotalCount, " stems in ", elapsed.Milliseconds(), " ms"+util.TerminalReset)
	log.Println("------------------")
}

// Server route to analyze the request body and return the full report as text
func handleApiReport(w http.ResponseWriter, r *http.Request) {
	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		return
	}

	var report bytes.Buffer
	if err := analyzer.AnalyzeContent(string(requestBodyBytes), &report); err != nil {
		log.Println(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, err = w.Write(report.Bytes())
	if err != nil {
		log.Println(err)
	}
}

// Server route to list the generated reports in the working directory and the crawl repository
func handleApiReports(w http.ResponseWriter, r *http.Request) {
	reports := []string{}
	filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(path, analyzer.ReportSuffix) {
			reports = append(reports, path)
		}
		return nil
	})

	response := &ReportsResponse{
		Message: "Available reports",
		Data:    reports,
	}

	jsonBytes, err := json.Marshal(response)
	if err != nil {
		log.Println("Unable to marshal json: ", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(jsonBytes)
	if err != nil {
		log.Println(err)
	}
}

// Server route to initialize a crawl on a go routine
func handleApiCrawl(w http.ResponseWriter, r *http.Request) {
	requestBodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Println(err)
		return
	}
	urlToCrawl := string(requestBodyBytes)
	_, err = url.ParseRequestURI(urlToCrawl)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		response, err := json.Marshal(struct {
			Message string `json:"message"`
		}{Message: "Invalid URL"})
		if err != nil {
			log.Println(err)
			return
		}
		_, err = w.Write(response)
		if err != nil {
			log.Println(err)
		}
		return
	}

	go func() {
		if _, err := webcrawler.CrawlDomain(urlToCrawl, webcrawler.FileOpsImpl{}, webcrawler.MaxURLsToCrawl); err != nil {
			log.Println(err)
		}
	}()

	jsonBytes, err := json.Marshal(struct {
		Message string `json:"message"`
	}{Message: fmt.Sprintf("Crawling %v", urlToCrawl)})
	if err != nil {
		log.Println("Unable to marshal json: ", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(jsonBytes)
	if err != nil {
		log.Println(err)
	}
}

// Serve starts the analyzer api on addr
func Serve(addr string) {
	http.HandleFunc("/api/analyze", handleApiAnalyze)
	http.HandleFunc("/api/report", handleApiReport)
	http.HandleFunc("/api/reports", handleApiReports)
	http.HandleFunc("/api/crawl", handleApiCrawl)

	fmt.Println(util.TerminalCyan + "Listening on " + addr + util.TerminalReset)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

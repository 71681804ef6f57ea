package webcrawler

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/deanrtaylor1/textanalyzer/analyzer"
	"github.com/deanrtaylor1/textanalyzer/freq"
	"github.com/deanrtaylor1/textanalyzer/lexer"
	"github.com/deanrtaylor1/textanalyzer/logger"
	"github.com/deanrtaylor1/textanalyzer/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxURLsToCrawl is the default page limit for a crawl.
const MaxURLsToCrawl = 10000

// PageSummary describes one crawled page: where it came from, how many
// same-domain outlinks it had and how many stems its text produced.
type PageSummary struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Outlinks int    `json:"outlinks"`
	Stems    int    `json:"stems"`
}

type FileOps interface {
	MkdirAll(dirName string, perm os.FileMode) error
	WriteFile(fileName string, data []byte, dirName string) error
	CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error
}

type FileOpsImpl struct{}

func (f FileOpsImpl) MkdirAll(dirName string, perm os.FileMode) error {
	return os.MkdirAll(dirName, perm)
}

func (f FileOpsImpl) WriteFile(fileName string, data []byte, dirName string) error {
	return os.WriteFile(path.Join(dirName, fileName), data, 0644)
}

func (f FileOpsImpl) CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	return CompressAndWriteGzipFile(fileName, data, dirName)
}

type FileOpsNoOp struct{}

func (f FileOpsNoOp) MkdirAll(dirName string, perm os.FileMode) error {
	return nil
}

func (f FileOpsNoOp) WriteFile(fileName string, data []byte, dirName string) error {
	return nil
}

func (f FileOpsNoOp) CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	return nil
}

// This function is used to write and compress a datastructure to disk
func CompressAndWriteGzipFile(fileName string, data interface{}, dirName string) error {
	var compressedData bytes.Buffer
	gzipWriter := gzip.NewWriter(&compressedData)

	encoder := gob.NewEncoder(gzipWriter)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("error encoding crawl data: %v", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("error closing gzip writer: %v", err)
	}

	if err := os.WriteFile(path.Join(dirName, fileName), compressedData.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing compressed data to disk: %v", err)
	}

	return nil
}

// ReadCompressedGzipFile reads a gzip+gob crawl artifact back into data.
func ReadCompressedGzipFile(fileName string, data interface{}, dirName string) error {
	compressedData, err := os.ReadFile(path.Join(dirName, fileName))
	if err != nil {
		return fmt.Errorf("error reading compressed data from disk: %v", err)
	}

	gzipReader, err := gzip.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return fmt.Errorf("error opening gzip reader: %v", err)
	}

	decoder := gob.NewDecoder(gzipReader)
	if err := decoder.Decode(data); err != nil {
		gzipReader.Close()
		return fmt.Errorf("error decoding crawl data: %v", err)
	}
	return gzipReader.Close()
}

// Add a helper function to extract the domain name from a URL
func extractDomain(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsedURL.Host
}

type crawlState struct {
	fileOps   FileOps
	repoDir   string
	mu        sync.Mutex
	pageCount int
	summaries []PageSummary
}

// crawlPage fetches one page, saves the raw html and the stemmed text to the
// repository, writes the page's frequency report and reports every outlink on
// foundUrls. It signals pageDone when finished regardless of errors.
func crawlPage(urlToCrawl string, foundUrls chan<- string, errChan chan<- error, pageDone chan<- struct{}, state *crawlState) {
	defer func() { pageDone <- struct{}{} }()

	resp, err := http.Get(urlToCrawl)
	if err != nil {
		errChan <- fmt.Errorf("error accessing site: %w", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errChan <- fmt.Errorf("error reading html response body: %w", err)
		return
	}

	fullUrl, err := url.Parse(urlToCrawl)
	if err != nil {
		log.Println(err)
		return
	}

	state.mu.Lock()
	pageNum := state.pageCount
	state.pageCount += 1
	state.mu.Unlock()

	pageName := fmt.Sprintf("page_%d", pageNum)
	if err := state.fileOps.WriteFile(pageName+".html", body, state.repoDir); err != nil {
		errChan <- fmt.Errorf("error saving page %s: %w", urlToCrawl, err)
	}

	textContent := lexer.ParseHtmlTextContent(string(body))
	stems := lexer.StemContent(textContent)

	if err := state.fileOps.WriteFile(pageName+".txt", []byte(strings.Join(stems, " ")), state.repoDir); err != nil {
		errChan <- fmt.Errorf("error saving stemmed page %s: %w", urlToCrawl, err)
	}

	stats := freq.IngestTokens(stems)
	var report bytes.Buffer
	if err := freq.WriteReport(&report, freq.Rank(stats), stats, freq.DefaultTopN); err != nil {
		errChan <- err
	} else if err := state.fileOps.WriteFile(analyzer.OutputName(pageName+".txt"), report.Bytes(), state.repoDir); err != nil {
		errChan <- fmt.Errorf("error saving report for %s: %w", urlToCrawl, err)
	}

	links := lexer.ParseLinks(string(body))
	outlinks := 0
	for _, link := range links {
		if shouldIgnoreLink(link) {
			continue
		}
		parsedLink, err := url.Parse(link)
		if err != nil {
			errChan <- fmt.Errorf("error parsing link: %w", err)
			continue
		}
		if !parsedLink.IsAbs() {
			// Resolve the relative link against the base URL
			link = fullUrl.ResolveReference(parsedLink).String()
		}
		outlinks += 1
		foundUrls <- link
	}

	state.mu.Lock()
	state.summaries = append(state.summaries, PageSummary{
		URL:      urlToCrawl,
		Name:     urlToName(fullUrl.Path),
		Outlinks: outlinks,
		Stems:    stats.TotalCount,
	})
	state.mu.Unlock()
}

// CrawlDomain crawls a domain breadth first, never leaving it, and produces
// one frequency report per page plus a crawl summary in the domain's
// repository directory. It returns the per page summaries once every started
// page has finished.
func CrawlDomain(domain string, fileOps FileOps, maxPages int) ([]PageSummary, error) {
	log.Println("crawling domain: ", domain)
	start := time.Now()

	fullUrl, err := url.Parse(domain)
	if err != nil {
		return nil, fmt.Errorf("error parsing domain: %w", err)
	}

	repoDir := filepath.Join("repository", strings.ReplaceAll(fullUrl.Host, ".", "_"))
	exists, err := util.CheckDirIsValid(repoDir)
	if err != nil {
		return nil, fmt.Errorf("error checking repository directory: %w", err)
	}
	if exists {
		log.Println(util.TerminalYellow+"repository", repoDir, "already exists, overwriting"+util.TerminalReset)
	}
	if err := fileOps.MkdirAll(repoDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating repository directory: %w", err)
	}

	state := &crawlState{fileOps: fileOps, repoDir: repoDir}
	visited := make(map[string]bool)

	foundUrls := make(chan string, 100)
	errChan := make(chan error, 100)
	pageDone := make(chan struct{}, 100)

	pending := 1
	go crawlPage(domain, foundUrls, errChan, pageDone, state)

	// Once pending is 0 no sender is left, so a non-empty buffer means a
	// completion signal was taken ahead of the links its page had already
	// queued; keep looping until the buffer is empty too.
	for pending > 0 || len(foundUrls) > 0 {
		// Discovered urls take priority over completion signals.
		select {
		case newURL := <-foundUrls:
			if acceptURL(newURL, domain, visited, maxPages) {
				pending += 1
				go crawlPage(newURL, foundUrls, errChan, pageDone, state)
			}
			continue
		default:
		}

		select {
		case newURL := <-foundUrls:
			if acceptURL(newURL, domain, visited, maxPages) {
				pending += 1
				go crawlPage(newURL, foundUrls, errChan, pageDone, state)
			}
		case err := <-errChan:
			logger.HandleError(err)
		case <-pageDone:
			pending -= 1
		}
	}

	for {
		select {
		case err := <-errChan:
			logger.HandleError(err)
			continue
		default:
		}
		break
	}

	state.mu.Lock()
	summaries := state.summaries
	state.mu.Unlock()

	if err := fileOps.CompressAndWriteGzipFile("crawl-summary.gz", summaries, repoDir); err != nil {
		logger.HandleError(err)
	}

	outlinksByURL := make(map[string]interface{}, len(summaries))
	for _, s := range summaries {
		outlinksByURL[s.URL] = s.Outlinks
	}
	if jsonSummary := util.MapToJSONGeneric(outlinksByURL, false, ""); jsonSummary != "" {
		if err := fileOps.WriteFile("crawl-report.json", []byte(jsonSummary), repoDir); err != nil {
			logger.HandleError(err)
		}
	}

	elapsed := time.Since(start)
	log.Printf("\033[32m------------------------------------" + util.TerminalReset)
	fmt.Printf("\033[32mFINISHED CRAWLING %v: %d pages in %dMs%v\n", fullUrl.Host, len(summaries), elapsed.Milliseconds(), util.TerminalReset)
	log.Printf("\033[32m------------------------------------\033[0m\n")

	return summaries, nil
}

// acceptURL marks a url as visited if it is new, same-domain and the page
// limit has not been reached.
func acceptURL(newURL string, domain string, visited map[string]bool, maxPages int) bool {
	if len(visited) >= maxPages {
		return false
	}
	if visited[newURL] {
		return false
	}
	if extractDomain(newURL) != extractDomain(domain) {
		return false
	}
	visited[newURL] = true
	return true
}

func urlToName(urlPath string) string {
	// Remove common file extensions
	urlPath = strings.TrimSuffix(urlPath, ".html")
	urlPath = strings.TrimSuffix(urlPath, ".php")
	urlPath = strings.TrimSuffix(urlPath, ".asp")

	// Split the path into components
	components := strings.Split(urlPath, "/")
	// Create a Caser for title casing in English without lowercasing the entire string first
	caser := cases.Title(language.English, cases.NoLower)

	// Process each component
	for i, component := range components {
		// Replace hyphens and underscores with spaces
		component = strings.ReplaceAll(component, "-", " ")
		component = strings.ReplaceAll(component, "_", " ")

		// Convert to title case
		components[i] = caser.String(component)
	}

	// If the last component is empty, remove it
	if len(components) > 0 && components[len(components)-1] == "" {
		components = components[:len(components)-1]
	}

	// Skip the first component and join the remaining components with " > "
	if len(components) > 1 {
		return strings.Join(components[1:], " > ")
	}

	return ""
}

var ignoredExtensions = map[string]bool{
	".zip": true, ".tar": true, ".gz": true, ".rar": true, ".7z": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".svg": true, ".webp": true,
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true, ".m4a": true,
	".mp4": true, ".avi": true, ".mkv": true, ".flv": true, ".mov": true, ".wmv": true, ".webm": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true, ".pages": true, ".key": true, ".numbers": true,
	".exe": true, ".msi": true, ".bin": true, ".dmg": true, ".apk": true, ".deb": true, ".rpm": true,
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true,
}

func shouldIgnoreLink(link string) bool {
	parsedURL, err := url.Parse(link)
	if err != nil {
		return true
	}

	// Check if the URL contains a fragment
	if parsedURL.Fragment != "" {
		return true
	}

	// Check if the URL has a file extension in the ignoredExtensions map
	fileExtension := filepath.Ext(parsedURL.Path)
	if _, ok := ignoredExtensions[fileExtension]; ok {
		return true
	}

	return false
}

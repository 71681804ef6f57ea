package cli

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/deanrtaylor1/textanalyzer/analyzer"
	"github.com/deanrtaylor1/textanalyzer/util"
	webcrawler "github.com/deanrtaylor1/textanalyzer/web-crawler"
)

//CLI Interface of textanalyzer

// Clean up the CLI response to remove the bullet point
func formatCliResponse(response string) string {
	return strings.Replace(response, "○ ", "", -1)
}

// Utility function to get a single input from the user
func getSingleInputPrompt(message string) string {
	prompt := &survey.Input{
		Message: message,
	}

	var input string
	err := survey.AskOne(prompt, &input)
	if err != nil {
		log.Fatal(err)
	}

	return input
}

// Utility function to get the website to crawl
func GetNewWebsitePrompt() string {
	return getSingleInputPrompt("Enter a website to crawl:")
}

// Run starts the interactive prompt loop: analyze a local document or crawl
// a website, until the user quits.
func Run() {
	for {
		selection := formatCliResponse(util.SelectInputFile("."))

		switch selection {
		case "Quit":
			return
		case "Crawl a website":
			newSite := GetNewWebsitePrompt()
			if _, err := url.ParseRequestURI(newSite); err != nil {
				log.Println(util.TerminalRed, "Error parsing URL, please check the domain", util.TerminalReset)
				continue
			}
			if _, err := webcrawler.CrawlDomain(newSite, webcrawler.FileOpsImpl{}, webcrawler.MaxURLsToCrawl); err != nil {
				log.Println(util.TerminalRed, err, util.TerminalReset)
			}
		default:
			start := time.Now()
			if err := analyzer.AnalyzeFile(selection); err != nil {
				log.Println(util.TerminalRed, err, util.TerminalReset)
				continue
			}
			elapsed := time.Since(start)
			fmt.Printf(util.TerminalGreen+"Analyzed %s in %d ms, report written to %s\n"+util.TerminalReset, selection, elapsed.Milliseconds(), analyzer.OutputName(selection))
		}
	}
}

package util

import (
	"encoding/json"
	"fmt"

	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/deanrtaylor1/textanalyzer/analyzer"
)

func JSONToFile(j []byte, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		fmt.Println(err)
		return
	}
	_, err = f.Write(j)
	if err != nil {
		fmt.Println(err)
		f.Close()
		return
	}
	err = f.Close()
	if err != nil {
		fmt.Println(err)
		return
	}
}

func MapToJSONGeneric(m map[string]interface{}, createFile bool, filename string) string {
	if len(m) == 0 {
		fmt.Println("map is empty")
		return ""
	}

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Println("error:", err)
		return ""
	}
	if createFile {
		JSONToFile(b, filename)
	}
	return string(b)
}

// ListInputFiles returns the names of files in dirName ending with suffix
func ListInputFiles(dirName string, suffix string) []string {
	files, err := os.ReadDir(dirName)
	if err != nil {
		log.Println(err)
		return nil
	}

	names := []string{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if strings.HasSuffix(f.Name(), suffix) && !strings.HasSuffix(f.Name(), analyzer.ReportSuffix) {
			names = append(names, f.Name())
		}
	}
	return names
}

// SelectInputFile prompts the user to pick an input document from dirName
func SelectInputFile(dirName string) string {
	options := []string{}
	for _, name := range ListInputFiles(dirName, ".txt") {
		options = append(options, "○ "+name)
	}
	options = append(options, "○ Crawl a website")
	options = append(options, "○ Quit")

	prompt := &survey.Select{
		Message: "Select a document to analyze:",
		Options: options,
	}

	var selected string
	err := survey.AskOne(prompt, &selected)
	if err != nil {
		log.Fatal(err)
	}

	return selected
}

func CheckDirIsValid(dirName string) (bool, error) {
	_, err := os.Stat(dirName)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil // Directory does not exist
		}
		return false, err // Some other error occurred
	}
	return true, nil // Directory exists
}

const (
	TerminalReset  = "\033[0m"
	TerminalRed    = "\033[31m"
	TerminalGreen  = "\033[32m"
	TerminalYellow = "\033[33m"
	TerminalBlue   = "\033[34m"
	TerminalPurple = "\033[35m"
	TerminalCyan   = "\033[36m"
	TerminalWhite  = "\033[37m"
)

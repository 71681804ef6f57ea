//go:build !dev
// +build !dev

package logger

import (
	"log"

	"github.com/deanrtaylor1/textanalyzer/util"
)

func HandleError(err error) {
	log.Println(util.TerminalRed+"Error:", err, util.TerminalReset)
}

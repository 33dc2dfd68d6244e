// Command oneshotvet reports one-shot handles used after being consumed.
//
// Usage:
//
//	go run ./cmd/oneshotvet ./...
//	go vet -vettool=$(which oneshotvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/randomizedcoder/go-oneshot/internal/analysis/handleuse"
)

func main() {
	singlechecker.Main(handleuse.Analyzer)
}

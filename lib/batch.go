package lib

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"
)

type BatchItem struct {
	Line       int
	Expression string
	Derivative string
}

// Batch is a file of expressions, one per line, with their derivatives.
type Batch struct {
	Name  string
	Items []BatchItem
}

func ReadBatchesFromDir(dir string, engine *Engine) ([]Batch, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	batches := []Batch{}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		filePath := path.Join(dir, file.Name())
		b, err := ReadBatchFromFile(filePath, engine)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}

	return batches, nil
}

// ReadBatchFromFile differentiates every expression in the file. Blank lines
// and lines starting with # are skipped.
func ReadBatchFromFile(filePath string, engine *Engine) (Batch, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Batch{}, err
	}
	defer f.Close()

	batch := Batch{
		Name:  batchNameFromPath(filePath),
		Items: []BatchItem{},
	}

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		expr := strings.TrimSpace(scanner.Text())
		if expr == "" || strings.HasPrefix(expr, "#") {
			continue
		}

		derivative, err := engine.Differentiate(expr)
		if err != nil {
			return Batch{}, fmt.Errorf("%s:%d: %w", filePath, line, err)
		}
		batch.Items = append(batch.Items, BatchItem{
			Line:       line,
			Expression: expr,
			Derivative: derivative,
		})
	}
	if err := scanner.Err(); err != nil {
		return Batch{}, err
	}

	return batch, nil
}

func batchNameFromPath(filePath string) string {
	_, fileName := path.Split(filePath)
	parts := strings.Split(fileName, ".")
	return parts[0]
}

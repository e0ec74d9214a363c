package ocr

import (
	"strings"

	"github.com/aws/aws-sdk-go/service/textract"

	"github.com/sii-blood-analyzer/internal/domain"
)

// documentFromBlocks turns a Textract block list into a Document. LINE
// blocks become text lines in reading order; each TABLE block becomes
// header-keyed row maps, with the first table row treated as the
// header.
func documentFromBlocks(blocks []*textract.Block) *domain.Document {
	byID := make(map[string]*textract.Block, len(blocks))
	for _, b := range blocks {
		if b.Id != nil {
			byID[*b.Id] = b
		}
	}

	var lines []string
	var tables []map[string]string

	for _, b := range blocks {
		if b.BlockType == nil {
			continue
		}
		switch *b.BlockType {
		case textract.BlockTypeLine:
			if b.Text != nil && strings.TrimSpace(*b.Text) != "" {
				lines = append(lines, strings.TrimSpace(*b.Text))
			}
		case textract.BlockTypeTable:
			tables = append(tables, tableRows(b, byID)...)
		}
	}

	return &domain.Document{
		Lines:  lines,
		Tables: tables,
		Raw:    strings.Join(lines, "\n"),
	}
}

// tableRows reconstructs one table's cell grid and keys every data row
// by the header row's cell text. Tables smaller than two rows carry no
// data rows and yield nothing.
func tableRows(table *textract.Block, byID map[string]*textract.Block) []map[string]string {
	type cellKey struct{ row, col int64 }
	grid := make(map[cellKey]string)
	var maxRow, maxCol int64

	for _, cellID := range childIDs(table) {
		cell, ok := byID[cellID]
		if !ok || cell.BlockType == nil || *cell.BlockType != textract.BlockTypeCell {
			continue
		}
		if cell.RowIndex == nil || cell.ColumnIndex == nil {
			continue
		}
		row, col := *cell.RowIndex, *cell.ColumnIndex
		grid[cellKey{row, col}] = cellText(cell, byID)
		if row > maxRow {
			maxRow = row
		}
		if col > maxCol {
			maxCol = col
		}
	}

	if maxRow < 2 {
		return nil
	}

	header := make([]string, maxCol+1)
	for col := int64(1); col <= maxCol; col++ {
		header[col] = grid[cellKey{1, col}]
	}

	var rows []map[string]string
	for row := int64(2); row <= maxRow; row++ {
		out := make(map[string]string, maxCol)
		for col := int64(1); col <= maxCol; col++ {
			key := header[col]
			if key == "" {
				continue
			}
			out[key] = grid[cellKey{row, col}]
		}
		if len(out) > 0 {
			rows = append(rows, out)
		}
	}
	return rows
}

// cellText joins a cell's WORD children in their stored order.
func cellText(cell *textract.Block, byID map[string]*textract.Block) string {
	var words []string
	for _, wordID := range childIDs(cell) {
		word, ok := byID[wordID]
		if !ok || word.Text == nil {
			continue
		}
		if word.BlockType != nil && *word.BlockType == textract.BlockTypeWord {
			words = append(words, *word.Text)
		}
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

func childIDs(b *textract.Block) []string {
	var ids []string
	for _, rel := range b.Relationships {
		if rel.Type == nil || *rel.Type != textract.RelationshipTypeChild {
			continue
		}
		for _, id := range rel.Ids {
			if id != nil {
				ids = append(ids, *id)
			}
		}
	}
	return ids
}

package ocr

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/textract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordBlock(id, text string) *textract.Block {
	return &textract.Block{
		Id:        aws.String(id),
		BlockType: aws.String(textract.BlockTypeWord),
		Text:      aws.String(text),
	}
}

func cellBlock(id string, row, col int64, wordIDs ...string) *textract.Block {
	b := &textract.Block{
		Id:          aws.String(id),
		BlockType:   aws.String(textract.BlockTypeCell),
		RowIndex:    aws.Int64(row),
		ColumnIndex: aws.Int64(col),
	}
	if len(wordIDs) > 0 {
		b.Relationships = []*textract.Relationship{{
			Type: aws.String(textract.RelationshipTypeChild),
			Ids:  aws.StringSlice(wordIDs),
		}}
	}
	return b
}

func sampleBlocks() []*textract.Block {
	return []*textract.Block{
		{
			Id:        aws.String("line-1"),
			BlockType: aws.String(textract.BlockTypeLine),
			Text:      aws.String("ИНВИТРО Общий анализ крови"),
		},
		{
			Id:        aws.String("line-2"),
			BlockType: aws.String(textract.BlockTypeLine),
			Text:      aws.String("Гемоглобин 145 г/л"),
		},
		{
			Id:        aws.String("table-1"),
			BlockType: aws.String(textract.BlockTypeTable),
			Relationships: []*textract.Relationship{{
				Type: aws.String(textract.RelationshipTypeChild),
				Ids:  aws.StringSlice([]string{"c11", "c12", "c21", "c22"}),
			}},
		},
		cellBlock("c11", 1, 1, "w1"),
		cellBlock("c12", 1, 2, "w2"),
		cellBlock("c21", 2, 1, "w3"),
		cellBlock("c22", 2, 2, "w4"),
		wordBlock("w1", "Показатель"),
		wordBlock("w2", "Результат"),
		wordBlock("w3", "Тромбоциты"),
		wordBlock("w4", "250"),
	}
}

func TestDocumentFromBlocks(t *testing.T) {
	doc := documentFromBlocks(sampleBlocks())

	assert.Equal(t, []string{"ИНВИТРО Общий анализ крови", "Гемоглобин 145 г/л"}, doc.Lines)
	assert.Contains(t, doc.Raw, "Гемоглобин 145 г/л")

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, map[string]string{
		"Показатель": "Тромбоциты",
		"Результат":  "250",
	}, doc.Tables[0])
}

func TestDocumentFromBlocksHeaderOnlyTable(t *testing.T) {
	blocks := []*textract.Block{
		{
			Id:        aws.String("table-1"),
			BlockType: aws.String(textract.BlockTypeTable),
			Relationships: []*textract.Relationship{{
				Type: aws.String(textract.RelationshipTypeChild),
				Ids:  aws.StringSlice([]string{"c11"}),
			}},
		},
		cellBlock("c11", 1, 1, "w1"),
		wordBlock("w1", "Показатель"),
	}

	doc := documentFromBlocks(blocks)
	assert.Empty(t, doc.Tables)
	assert.True(t, doc.Empty())
}

func TestDocumentFromBlocksMultiWordCell(t *testing.T) {
	blocks := []*textract.Block{
		{
			Id:        aws.String("table-1"),
			BlockType: aws.String(textract.BlockTypeTable),
			Relationships: []*textract.Relationship{{
				Type: aws.String(textract.RelationshipTypeChild),
				Ids:  aws.StringSlice([]string{"c11", "c21"}),
			}},
		},
		cellBlock("c11", 1, 1, "w1", "w2"),
		cellBlock("c21", 2, 1, "w3", "w4"),
		wordBlock("w1", "Нейтрофилы,"),
		wordBlock("w2", "абс."),
		wordBlock("w3", "4.1"),
		wordBlock("w4", "тыс/мкл"),
	}

	doc := documentFromBlocks(blocks)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "4.1 тыс/мкл", doc.Tables[0]["Нейтрофилы, абс."])
}

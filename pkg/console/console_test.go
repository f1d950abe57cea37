package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/diillson/aws-cost-by-group-go/internal/shared/types"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRendersRowsInOrder(t *testing.T) {
	c := NewConsoleWithWriter(&bytes.Buffer{})
	table := c.CreateTable()
	table.AddColumn("TimePeriodStart")
	table.AddColumn("Service")
	table.AddColumn("Amount", types.AlignRight)

	table.AddRow("2022-03-01", "EC2", "0.12345")
	table.AddRow("2022-04-01", "S3", "12.50000")

	out := table.Render()
	first := strings.Index(out, "0.12345")
	second := strings.Index(out, "12.50000")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
	assert.Contains(t, out, "2022-04-01")
	assert.Equal(t, 2, table.(*Table).Len())
}

func TestTableHeadersKeepColumnNames(t *testing.T) {
	table := NewConsoleWithWriter(&bytes.Buffer{}).CreateTable()
	table.AddColumn("TimePeriodStart")
	table.AddColumn("USAGE_TYPE")
	table.AddColumn("Service")
	table.AddColumn("Amount", types.AlignRight)
	table.AddRow("2022-03-01", "BoxUsage:t2.micro", "EC2", "0.12345")

	out := table.Render()
	assert.Contains(t, out, "TimePeriodStart")
	assert.Contains(t, out, "USAGE_TYPE")
	assert.Contains(t, out, "Service")
	assert.NotContains(t, out, "USAGE TYPE")
	assert.NotContains(t, out, "TIMEPERIODSTART")
}

func TestAddColumnAlignment(t *testing.T) {
	table := &Table{}
	table.AddColumn("USAGE_TYPE")
	table.AddColumn("Amount", types.AlignRight)
	table.AddColumn("Other", "ignored option")

	require.Len(t, table.aligns, 3)
	assert.Equal(t, tw.AlignLeft, table.aligns[0])
	assert.Equal(t, tw.AlignRight, table.aligns[1])
	assert.Equal(t, tw.AlignLeft, table.aligns[2])
}

func TestAddRowStringifiesCells(t *testing.T) {
	table := &Table{}
	table.AddRow("a", 1, 2.5)

	assert.Equal(t, [][]string{{"a", "1", "2.5"}}, table.rows)
}

func TestPrintAndDump(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWithWriter(&buf)

	c.Println("Total:", "0.123451")
	c.DumpJSON(map[string]string{"start": "2022-03-01"})

	assert.Contains(t, buf.String(), "Total: 0.123451\n")
	assert.Contains(t, buf.String(), `"start": "2022-03-01"`)
}

func TestStatusIsNoopWhenNotInteractive(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWithWriter(&buf)

	status := c.Status("fetching")
	status.Update("still fetching")
	status.Stop()

	assert.Empty(t, buf.String())
}

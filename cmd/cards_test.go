package cmd

import (
	"bytes"
	"testing"

	"github.com/mselser95/hearthstone-cards/internal/cardtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCards(t *testing.T) {
	classic := "Classic"
	warlock := "Warlock"

	rows := []cardtable.Row{
		{ID: 100, Name: "Lord Jaraxxus", Set: &classic, Class: &warlock},
		{ID: 200, Name: "Deathwing"},
	}

	var buf bytes.Buffer
	require.NoError(t, printCards(&buf, "Warlock", rows))

	out := buf.String()
	assert.Contains(t, out, "Lord Jaraxxus")
	assert.Contains(t, out, "Deathwing")
	assert.Contains(t, out, "Total: 2 cards")
}

func TestPrintCards_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCards(&buf, "Bard", nil))

	assert.Equal(t, "No legendary cards found for Bard.\n", buf.String())
}

func TestCardsCmd_RequiresClass(t *testing.T) {
	assert.Error(t, cardsCmd.Args(cardsCmd, nil))
	assert.Error(t, cardsCmd.Args(cardsCmd, []string{"Warlock", "Mage"}))
	assert.NoError(t, cardsCmd.Args(cardsCmd, []string{"Warlock"}))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["serve"])
	assert.True(t, names["cards"])
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	membudget "github.com/AgustinJimenez/llama-membudget"
)

func TestArchLabel(t *testing.T) {
	assert.Equal(t, "-", archLabel(nil))
	assert.Equal(t, "-", archLabel(&membudget.ModelArchitectureDescriptor{}))
	assert.Equal(t, "llama", archLabel(&membudget.ModelArchitectureDescriptor{Architecture: "llama"}))
}

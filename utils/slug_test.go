package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Maria Silva", "maria_silva"},
		{"diacritics", "José Álvares", "jose_alvares"},
		{"turma label", "JII A", "jii_a"},
		{"accented child", "María", "maria"},
		{"special runs collapse", "Ana -- Clara!!", "ana_clara"},
		{"leading and trailing junk", "  ___Bruno___  ", "bruno"},
		{"cedilla", "Gonçalves", "goncalves"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToSnakeCase(tt.input))
		})
	}
}

func TestSlugifyFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "foto.jpg", "foto.jpg"},
		{"uppercase extension lowered", "IMG_1234.JPG", "img-1234.jpg"},
		{"spaces and symbols", "Foto Nº1.JPG", "foto-n1.jpg"},
		{"no extension", "minha foto", "minha-foto"},
		{"multiple dots", "minha.foto.final.PNG", "minha-foto-final.png"},
		{"empty base falls back", "???.png", "foto.png"},
		{"only extension", ".jpeg", "foto.jpeg"},
		{"diacritics in base", "férias na praia.jpeg", "ferias-na-praia.jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SlugifyFileName(tt.input))
		})
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("JII A", "José Álvares", "María", 0, "Foto Nº1.JPG")
	assert.Equal(t, "jii_a/jose_alvares/maria/1-foto-n1.jpg", key)
}

func TestBuildObjectKeyPositionPrefixIsOneBased(t *testing.T) {
	assert.Equal(t, "jii_b/ana/bia/1-a.jpg", BuildObjectKey("JII B", "Ana", "Bia", 0, "a.jpg"))
	assert.Equal(t, "jii_b/ana/bia/2-a.jpg", BuildObjectKey("JII B", "Ana", "Bia", 1, "a.jpg"))
	assert.Equal(t, "jii_b/ana/bia/3-a.jpg", BuildObjectKey("JII B", "Ana", "Bia", 2, "a.jpg"))
}

func TestBuildObjectKeyIsDeterministic(t *testing.T) {
	first := BuildObjectKey("JII A", "João Paulo", "Lívia", 2, "praia 2025.jpeg")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, BuildObjectKey("JII A", "João Paulo", "Lívia", 2, "praia 2025.jpeg"))
	}
}

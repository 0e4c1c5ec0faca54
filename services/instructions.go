package services

import (
	"bytes"
	"context"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"article-admin/models"
)

const instructionsHeader = `# INSTRUCCIONES PARA ANÁLISIS DE ARTÍCULO CIENTÍFICO

Por favor, complete los siguientes campos basándose en la lectura cuidadosa del artículo científico. Los campos están listados en formato YAML para facilitar la comprensión y completado.

---

`

const instructionsFooter = "```" + `

---

## INSTRUCCIONES GENERALES:

1. **Lectura completa**: Lea todo el artículo antes de comenzar el análisis
2. **Precisión**: Sea específico y preciso en sus respuestas
3. **Límites de caracteres**: Respete el número máximo de caracteres indicado para cada campo cuando esté especificado
4. **Información faltante**: Si alguna información no está disponible, indique "No especificado" o "No disponible"
5. **Objetividad**: Base sus respuestas únicamente en el contenido del artículo
6. **Traducciones**: Para campos de traducción, mantenga el sentido original pero use español claro y académico
7. **Realismo**: Se penaliza si completa información que el documento no mencione, es preferible indicar que no hay información al respecto en vez de inventarla.
8. **Redacción**: Use un lenguaje no tan técnico, debe ser comprensible, manteniendo un tono académico.

## FORMATO DE RESPUESTA:
Para cada campo listado arriba, proporcione su respuesta en el siguiente formato:
"""
**<Nombre del campo exacto>:**

` + "```" + `
<Su respuesta aquí>
` + "```" + `
"""
`

const instructionsNoMetadata = "\nNo se pudieron cargar los metadatos de las columnas. Por favor, recargue la página e intente nuevamente.\n"

// Spalten, deren Name eines dieser Wörter enthält, werden nie abgefragt.
var instructionExcludes = []string{"quartil", "seleccionado"}

type instructionField struct {
	Field       string `yaml:"campo"`
	Language    string `yaml:"idioma,omitempty"`
	Description string `yaml:"descripcion,omitempty"`
	Format      string `yaml:"formato,omitempty"`
	MaxChars    int    `yaml:"maximo_caracteres,omitempty"`
}

type instructionBlock struct {
	Fields []instructionField `yaml:"campos_analisis"`
}

// AnalysisFields filtert die Spalten, die bei der Lektüre eines Artikels ausgefüllt werden:
// keine importierten, keine mit festem Wert, keine Quartil- oder Markierungsspalten.
func AnalysisFields(columns []models.ColumnMeta) []models.ColumnMeta {
	var out []models.ColumnMeta
	for _, c := range columns {
		if c.BackupSource != nil && strings.TrimSpace(*c.BackupSource) != "" {
			continue
		}
		if c.FixedValue != nil && strings.TrimSpace(*c.FixedValue) != "" {
			continue
		}
		name := strings.ToLower(c.Column)
		excluded := false
		for _, w := range instructionExcludes {
			if strings.Contains(name, w) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, c)
		}
	}
	return out
}

// BuildInstructions erzeugt den Anweisungstext mit einem YAML-Block der auszufüllenden Felder.
func BuildInstructions(columns []models.ColumnMeta) (string, error) {
	var sb strings.Builder
	sb.WriteString(instructionsHeader)
	if len(columns) == 0 {
		sb.WriteString(instructionsNoMetadata)
		return sb.String(), nil
	}

	var block instructionBlock
	for _, c := range AnalysisFields(columns) {
		f := instructionField{Field: c.Column}
		if c.Language != nil {
			f.Language = *c.Language
		}
		if c.Explanation != nil {
			f.Description = *c.Explanation
		}
		if c.Format != nil {
			f.Format = *c.Format
		}
		if c.Max != nil && *c.Max > 0 {
			f.MaxChars = *c.Max
		}
		block.Fields = append(block.Fields, f)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(block); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	sb.WriteString("```yaml\n# CAMPOS A COMPLETAR\n")
	sb.Write(buf.Bytes())
	sb.WriteString(instructionsFooter)
	return sb.String(), nil
}

// Instructions lädt die Spaltenbeschreibungen und erzeugt den Anweisungstext.
func (s *RecordService) Instructions(ctx context.Context) (string, error) {
	meta, err := s.Backend.FieldMetadata(ctx)
	if err != nil {
		s.Logger.Error("Spaltenbeschreibungen konnten nicht geladen werden.", zap.Error(err))
		return "", opError("instructions", err)
	}
	text, err := BuildInstructions(meta.Columns)
	if err != nil {
		return "", opError("instructions", err)
	}
	return text, nil
}

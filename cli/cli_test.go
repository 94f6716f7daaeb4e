package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flatrec/flat/ftag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const schemaYAML = `
types:
  - tag: example
    key_fields: [field1, field3]
    fields:
      - {name: field1}
      - {name: field2, type: integer}
      - {name: field3, type: date}
  - tag: person
    delimiter: pipe
    fields:
      - {name: name}
      - {name: lastName}
`

func newEnv(t *testing.T, stdin string) (Env, *bytes.Buffer) {
	path := filepath.Join(t.TempDir(), "schemas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(schemaYAML), 0o600))

	env, err := NewEnv(path, zap.NewNop())
	require.NoError(t, err)

	stdout := &bytes.Buffer{}
	env.Stdin = strings.NewReader(stdin)
	env.Stdout = stdout
	return env, stdout
}

func TestNewEnv_Errors(t *testing.T) {
	_, err := NewEnv("", zap.NewNop())
	assert.Error(t, err)

	_, err = NewEnv(filepath.Join(t.TempDir(), "missing.yaml"), zap.NewNop())
	assert.Error(t, err)
}

func TestRunConvert(t *testing.T) {
	env, stdout := newEnv(t, "field1,field2,field3\na,32,10/16/2015\nb,(5),20151017\n")

	err := RunConvert(env, ConvertCmd{
		Input:     Input{Tag: "example", From: "-", Header: true},
		Output:    Output{To: "-"},
		OutHeader: true,
		Delimiter: "|",
	})
	require.NoError(t, err)
	assert.Equal(t, "field1|field2|field3\na|32|10/16/2015\nb|-5|10/17/2015\n", stdout.String())
}

func TestRunConvert_JSON(t *testing.T) {
	env, stdout := newEnv(t, "a&b,32,10/16/2015\n")

	err := RunConvert(env, ConvertCmd{
		Input:  Input{Tag: "example", From: "-"},
		Output: Output{To: "-"},
		JSON:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"field1":"a&b","field2":32,"field3":"10/16/2015"}`+"\n", stdout.String())
}

func TestRunConvert_Files(t *testing.T) {
	env, _ := newEnv(t, "")
	dir := t.TempDir()
	from := filepath.Join(dir, "in.csv")
	to := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(from, []byte("Jason|Bowles\n"), 0o600))
	require.NoError(t, os.WriteFile(to, []byte("old"), 0o600))

	cmd := ConvertCmd{
		Input:     Input{Tag: "person", From: from},
		Output:    Output{To: to},
		Delimiter: ",",
	}
	err := RunConvert(env, cmd)
	assert.ErrorContains(t, err, "--force")

	cmd.Force = true
	require.NoError(t, RunConvert(env, cmd))
	bs, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "Jason,Bowles\n", string(bs))

	cmd.From = filepath.Join(dir, "missing.csv")
	assert.Error(t, RunConvert(env, cmd))

	cmd.Tag = "unknown"
	assert.Error(t, RunConvert(env, cmd))
}

func TestRunIdentifyThenReconstruct(t *testing.T) {
	env, stdout := newEnv(t, "a,32,10/16/2015\nb,1,10/17/2015\n")
	require.NoError(t, RunIdentify(env, IdentifyCmd{
		Input:  Input{Tag: "example", From: "-"},
		Output: Output{To: "-"},
	}))
	identities := stdout.String()
	assert.Equal(t, "example~a,32,10/16/2015\nexample~b,1,10/17/2015\n", identities)

	env, stdout = newEnv(t, identities+"person~Jason|Bowles\nnope\n")
	require.NoError(t, RunReconstruct(env, ReconstructCmd{From: "-", JSON: true}))

	expected := `{
  "example": [
    {
      "field1": "a",
      "field2": 32,
      "field3": "10/16/2015"
    },
    {
      "field1": "b",
      "field2": 1,
      "field3": "10/17/2015"
    }
  ],
  "person": [
    {
      "name": "Jason",
      "lastName": "Bowles"
    }
  ]
}
`
	assert.Equal(t, expected, stdout.String())
}

func TestRunReconstruct_Tables(t *testing.T) {
	env, stdout := newEnv(t, "person~Jason|Bowles\n\nperson~Al|Bowles\n")
	require.NoError(t, RunReconstruct(env, ReconstructCmd{From: "-"}))

	output := stdout.String()
	assert.True(t, strings.HasPrefix(output, "person (2)\n"))
	assert.Contains(t, output, "| Jason | Bowles   |")
	assert.NotContains(t, output, "example")
}

func TestRunKeys(t *testing.T) {
	env, stdout := newEnv(t, "a,32,10/16/2015\n")
	require.NoError(t, RunKeys(env, KeysCmd{Input: Input{Tag: "example", From: "-"}}))
	assert.Equal(t, "a,10/16/2015\n", stdout.String())

	env, stdout = newEnv(t, "a,32,10/16/2015\n")
	require.NoError(t, RunKeys(env, KeysCmd{Input: Input{Tag: "example", From: "-"}, Fields: []string{"field2", "field1"}}))
	assert.Equal(t, "32,a\n", stdout.String())

	env, _ = newEnv(t, "a,32,10/16/2015\n")
	assert.Error(t, RunKeys(env, KeysCmd{Input: Input{Tag: "example", From: "-"}, Fields: []string{"missing"}}))
}

func TestRun_NoCommand(t *testing.T) {
	env, _ := newEnv(t, "")
	assert.Error(t, Run(Args{}, env))
}

func TestRun_DispatchesKeys(t *testing.T) {
	env, stdout := newEnv(t, "Jason|Bowles\n")
	args := Args{Keys: &KeysCmd{Input: Input{Tag: "person", From: "-"}, Fields: []string{"lastName"}}}
	require.NoError(t, Run(args, env))
	assert.Equal(t, "Bowles\n", stdout.String())
}

func TestNewEnv_Registry(t *testing.T) {
	env, _ := newEnv(t, "")
	var registry *ftag.Registry = env.Registry
	assert.Equal(t, []string{"example", "person"}, registry.Tags())
}

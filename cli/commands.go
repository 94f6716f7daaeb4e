package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flatrec/flat"
	"flatrec/flat/frecord"
	"flatrec/flat/ftable"
	"flatrec/ui"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const stdio = "-"

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// decodeInput decodes the command input with the schema registered for its tag.
func decodeInput(env Env, input Input) (frecord.Batch, error) {
	schema, err := env.Registry.Schema(input.Tag)
	if err != nil {
		return frecord.Batch{}, err
	}
	decoder := frecord.NewDecoder(schema, frecord.WithDiagnostics(env.Registry.Diagnostics()))

	var batch frecord.Batch
	if input.From == stdio || input.From == "" {
		batch, err = flat.Decode(env.Stdin, decoder, input.Header)
	} else {
		if !CheckExistence(input.From) {
			return frecord.Batch{}, errors.Errorf(`source file "%s" does not exist`, input.From)
		}
		batch, err = flat.DecodeFile(input.From, decoder, input.Header)
	}
	if err != nil {
		return frecord.Batch{}, err
	}

	env.Logger.Info("decoded",
		zap.String("tag", input.Tag),
		zap.Int("records", len(batch.Records)),
		zap.Int("failures", len(batch.Failures)),
		zap.Int("diagnostics", len(batch.Diagnostics)),
	)
	return batch, nil
}

// withOutput runs write against the destination, closing it afterwards.
func withOutput(env Env, output Output, write func(w io.Writer) error) (err error) {
	if output.To == stdio || output.To == "" {
		return write(env.Stdout)
	}
	if CheckExistence(output.To) && !output.Force {
		return errors.Errorf(`destination file "%s" exists, pass --force to overwrite it`, output.To)
	}
	file, err := os.Create(filepath.Clean(output.To))
	if err != nil {
		return errors.Wrapf(err, `unable to create "%s"`, output.To)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, `unable to close "%s"`, output.To)
		}
	}()
	return write(file)
}

func RunConvert(env Env, cmd ConvertCmd) error {
	batch, err := decodeInput(env, cmd.Input)
	if err != nil {
		return errors.Wrap(err, "RunConvert error")
	}
	err = withOutput(env, cmd.Output, func(w io.Writer) error {
		if cmd.JSON {
			return writeJSONLines(w, batch.Records)
		}
		return flat.Write(w, batch.Records, flat.WriteOptions{
			Header:         cmd.OutHeader,
			IncludeSkipped: cmd.IncludeSkipped,
			Delimiter:      cmd.Delimiter,
		})
	})
	if err != nil {
		return errors.Wrap(err, "RunConvert error")
	}
	return nil
}

func writeJSONLines(w io.Writer, records []*frecord.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	for _, record := range records {
		err := encoder.Encode(record.ToOrderedMap())
		if err != nil {
			return errors.Wrapf(err, "writeJSONLines error: record %d", record.Ordinal)
		}
	}
	return nil
}

func RunIdentify(env Env, cmd IdentifyCmd) error {
	batch, err := decodeInput(env, cmd.Input)
	if err != nil {
		return errors.Wrap(err, "RunIdentify error")
	}
	err = withOutput(env, cmd.Output, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		for _, record := range batch.Records {
			_, _ = bw.WriteString(record.Identity())
			_, _ = bw.WriteString(frecord.LineSeparator)
		}
		return bw.Flush()
	})
	if err != nil {
		return errors.Wrap(err, "RunIdentify error")
	}
	return nil
}

func RunReconstruct(env Env, cmd ReconstructCmd) error {
	var reader io.Reader = env.Stdin
	if cmd.From != stdio && cmd.From != "" {
		file, err := os.Open(filepath.Clean(cmd.From))
		if err != nil {
			return errors.Wrap(err, "RunReconstruct error")
		}
		defer file.Close()
		reader = file
	}
	lines, err := flat.ReadLines(reader)
	if err != nil {
		return errors.Wrap(err, "RunReconstruct error")
	}
	identities := lo.Filter(lines, func(line string, _ int) bool {
		return line != ""
	})

	parsed := env.Registry.ParseAll(identities)
	for _, failure := range parsed.Failures {
		env.Logger.Warn("record skipped", zap.Error(failure))
	}

	if cmd.JSON {
		grouped := orderedmap.New()
		grouped.SetEscapeHTML(false)
		for _, entry := range parsed.Groups.Entries() {
			grouped.Set(entry.Key, lo.Map(entry.Value, func(record *frecord.Record, _ int) *orderedmap.OrderedMap {
				return record.ToOrderedMap()
			}))
		}
		bs, err := json.MarshalIndent(grouped, "", "  ")
		if err != nil {
			return errors.Wrap(err, "RunReconstruct error")
		}
		_, err = fmt.Fprintln(env.Stdout, string(bs))
		return errors.Wrap(err, "RunReconstruct error")
	}

	for _, entry := range parsed.Groups.Entries() {
		if len(entry.Value) == 0 {
			continue
		}
		fmt.Fprintf(env.Stdout, "%s (%d)\n", entry.Key, len(entry.Value))
		err = ftable.Print(env.Stdout, entry.Value, ftable.DefaultOptions)
		if err != nil {
			return errors.Wrap(err, "RunReconstruct error")
		}
	}
	return nil
}

func RunKeys(env Env, cmd KeysCmd) error {
	batch, err := decodeInput(env, cmd.Input)
	if err != nil {
		return errors.Wrap(err, "RunKeys error")
	}
	for _, record := range batch.Records {
		var key string
		if len(cmd.Fields) > 0 {
			key, err = record.BuildKey(cmd.Fields...)
		} else {
			key, err = record.Key()
		}
		if err != nil {
			return errors.Wrap(err, "RunKeys error")
		}
		fmt.Fprintln(env.Stdout, key)
	}
	return nil
}

func RunView(env Env, cmd ViewCmd) error {
	batch, err := decodeInput(env, cmd.Input)
	if err != nil {
		return errors.Wrap(err, "RunView error")
	}
	return ui.Start(batch, cmd.PageSize)
}

// PrintMetrics writes the flatrec counters of the default registry as name[labels] value.
func PrintMetrics(w io.Writer) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		fmt.Fprintln(w, "unable to gather metrics:", err)
		return
	}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "flatrec_") {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, label.GetName()+"="+label.GetValue())
			}
			fmt.Fprintf(w, "%s%v %v\n", family.GetName(), labels, metric.GetCounter().GetValue())
		}
	}
}

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chess-evaluator/engine"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// render writes the generated Go source for the packed constants.
func render(source string, packed []engine.PackedConstant) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by packpsqt from %s; DO NOT EDIT.\n\n", source)
	b.WriteString("package engine\n\n")
	b.WriteString("var packedPSQT = [...]PackedConstant{\n")
	for i, c := range packed {
		if i%engine.ConstantsPerTable == 0 {
			table := i / engine.ConstantsPerTable
			ph := engine.Phase(table / engine.KindCount)
			k := engine.PieceKind(table % engine.KindCount)
			fmt.Fprintf(&b, "\t// %s %s\n", ph, k)
		}
		fmt.Fprintf(&b, "\t{Lo: 0x%016x, Hi: 0x%08x},\n", c.Lo, c.Hi)
	}
	b.WriteString("}\n")
	return b.Bytes()
}

func main() {
	inPath := flag.String("in", "data/psqt.json", "input piece-square table JSON")
	outPath := flag.String("out", "engine/psqt_packed.go", "output path for generated Go source")
	check := flag.Bool("check", false, "verify the output file is up to date instead of writing it")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	raw, err := engine.LoadRawTables(*inPath)
	if err != nil {
		log.Fatal().Err(err).Str("in", *inPath).Msg("read tables")
	}
	packed, err := engine.PackTables(raw)
	if err != nil {
		log.Fatal().Err(err).Str("in", *inPath).Msg("pack tables")
	}

	// Decoding what we just packed must reproduce the source exactly.
	decoded, err := engine.DecodeTables(packed)
	if err != nil {
		log.Fatal().Err(err).Msg("decode packed tables")
	}
	for ph := range raw {
		for k := range raw[ph] {
			for sq, v := range raw[ph][k] {
				if decoded[ph][k][sq] != engine.QuantizationFactor*v {
					log.Fatal().Int("phase", ph).Int("kind", k).Int("index", sq).
						Int("want", engine.QuantizationFactor*v).Int("got", decoded[ph][k][sq]).Msg("round trip mismatch")
				}
			}
		}
	}
	log.Debug().Int("constants", len(packed)).Msg("packed tables verified")

	source := strings.TrimPrefix(filepath.ToSlash(*inPath), "../")
	out := render(source, packed)

	if *check {
		current, err := os.ReadFile(*outPath)
		if err != nil {
			log.Fatal().Err(err).Str("out", *outPath).Msg("read generated file")
		}
		if !bytes.Equal(current, out) {
			log.Fatal().Str("out", *outPath).Msg("generated file is stale, rerun packpsqt")
		}
		log.Info().Str("out", *outPath).Msg("generated file is up to date")
		return
	}

	tmp := *outPath + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		log.Fatal().Err(err).Str("out", tmp).Msg("write generated file")
	}
	if err := os.Rename(tmp, *outPath); err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("rename generated file")
	}
	log.Info().Str("out", *outPath).Int("constants", len(packed)).Msg("wrote packed tables")
}

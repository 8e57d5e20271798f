/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"bufio"
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"dirpx.dev/ofx"
	"dirpx.dev/ofx/apis"
	"dirpx.dev/ofx/codec"
	"dirpx.dev/ofx/config"
	"dirpx.dev/ofx/object"
)

// rootCmd represents the console command.
var rootCmd = &cobra.Command{
	Use:   "ofx-console",
	Short: "Interactive get/set console over registered objects",
	Long: `ofx-console registers a demo object graph and reads commands from
stdin. Each line is "<get|set> <id>.<member>[.<member>...][=<value>]";
the result text is echoed back, failures print "<no result>".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := configureLogging()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ofx.SetExt(logger)
		ofx.SetConfig(config.NewConfig(
			config.WithMaxDepth(viper.GetInt("max-depth")),
		))

		if err := registerDemoGraph(); err != nil {
			return err
		}

		return repl(cmd)
	},
}

func init() {
	rootCmd.Flags().Bool(
		"debug",
		false,
		"log resolution failures to stderr in development format",
	)
	rootCmd.Flags().Int(
		"max-depth",
		config.DefaultMaxDepth,
		"maximum dotted path depth a command may address",
	)

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func configureLogging() (*zap.Logger, error) {
	if viper.GetBool("debug") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// record is a nested reflectable with a compact "a,b" text form, so it can
// be addressed both as a navigable member and as a leaf.
type record struct {
	object.Handle
	A int
	B string
}

func (r *record) Fields() []apis.Field {
	return []apis.Field{
		{Name: "a", Ptr: &r.A},
		{Name: "b", Ptr: &r.B},
	}
}

// demoObject mirrors a typical tweakable component: one scalar, one nested
// record, and one member deliberately left out of the declaration.
type demoObject struct {
	object.Handle
	A int
	D record

	// Undeclared on purpose: commands addressing it must fail.
	NonReflectable string
}

func (o *demoObject) Fields() []apis.Field {
	return []apis.Field{
		{Name: "a", Ptr: &o.A},
		{Name: "d", Ptr: &o.D},
	}
}

// recordCodec gives record a leaf text form "a,b".
func recordCodec() apis.Codec {
	return codec.Of(
		func(r record) string {
			return fmt.Sprintf("%d,%s", r.A, r.B)
		},
		func(s string) (record, error) {
			head, tail, found := strings.Cut(s, ",")
			if !found {
				return record{}, errors.Newf("record text must be '<a>,<b>', got %q", s)
			}
			a, err := cast.ToIntE(head)
			if err != nil {
				return record{}, err
			}
			return record{A: a, B: tail}, nil
		},
	)
}

func registerDemoGraph() error {
	if err := ofx.RegisterCodec(reflect.TypeOf(record{}), recordCodec()); err != nil {
		return err
	}

	obj := &demoObject{
		A:              1,
		D:              record{A: 2, B: "hello"},
		NonReflectable: "nonreflectable",
	}
	if err := ofx.Attach(obj, "test_object"); err != nil {
		return err
	}
	if err := ofx.Attach(&obj.D, "record_1"); err != nil {
		return err
	}

	ofx.SetRoot(reflect.TypeOf(demoObject{}))
	return nil
}

func repl(cmd *cobra.Command) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, `ofx-console ready ("quit" to exit)`)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		}

		result := ofx.ParseAndExecute(line)
		if result == "" {
			fmt.Fprintln(out, "<no result>")
			continue
		}
		fmt.Fprintln(out, result)
	}
	return in.Err()
}

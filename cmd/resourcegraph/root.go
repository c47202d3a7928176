package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanpama/resourcegraph/internal/introspection"
	"github.com/hanpama/resourcegraph/internal/language"
	"github.com/hanpama/resourcegraph/internal/schema"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "resourcegraph",
		Short: "Synthesize GraphQL schemas from resource metadata",
		Long: `resourcegraph reads resource metadata documents and synthesizes the
GraphQL schema exposing them: item and collection queries, mutations,
subscriptions, Relay connections and the Node interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./resourcegraph.yaml)")
	flags.String("resources", "", "resource metadata file or directory")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("name-converter", "", "property name converter (identity, snake_case, camel_case)")

	root.AddCommand(
		newSDLCommand(),
		newIntrospectCommand(),
		newValidateCommand(),
		newTypesCommand(),
	)
	return root
}

// withSchema builds the schema for cmd and passes it to fn.
func withSchema(cmd *cobra.Command, fn func(context.Context, *schema.Schema) error) (err error) {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(context.Background()); cerr != nil && err == nil {
			err = cerr
		}
	}()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := a.provider.Schema(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, s)
}

func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func newSDLCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sdl",
		Short: "Print the synthesized schema as SDL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSchema(cmd, func(_ context.Context, s *schema.Schema) error {
				return writeOutput(cmd, out, []byte(schema.Render(s)))
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write SDL to file (default: stdout)")
	return cmd
}

func newIntrospectCommand() *cobra.Command {
	var (
		out      string
		typeName string
		compact  bool
	)
	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Print the introspection result of the synthesized schema as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSchema(cmd, func(ctx context.Context, s *schema.Schema) error {
				var (
					res *introspection.Result
					err error
				)
				if typeName != "" {
					res, err = introspection.Type(ctx, s, typeName)
				} else {
					res, err = introspection.Run(ctx, s)
				}
				if err != nil {
					return err
				}
				data, err := res.JSON(!compact)
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, append(data, '\n'))
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write JSON to file (default: stdout)")
	cmd.Flags().StringVar(&typeName, "type", "", "introspect a single type")
	cmd.Flags().BoolVar(&compact, "compact", false, "do not indent the JSON output")
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [operation files...]",
		Short: "Build the schema, validate its SDL and optionally validate operation documents against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSchema(cmd, func(_ context.Context, s *schema.Schema) error {
				doc, err := schema.Validate(s)
				if err != nil {
					return err
				}
				for _, path := range args {
					content, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					if err := language.ValidateQuery(doc, string(content)); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "schema is valid: %d types, %d operation documents\n", len(doc.Types), len(args))
				return nil
			})
		},
	}
}

func newTypesCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List every registered type, including unreachable ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSchema(cmd, func(_ context.Context, s *schema.Schema) error {
				types := s.Types()
				names := s.TypeNames()
				w := cmd.OutOrStdout()
				for _, name := range names {
					k := schema.KindOf(types[name])
					if kind != "" && !strings.EqualFold(kind, k) {
						continue
					}
					fmt.Fprintf(w, "%-12s %s\n", k, name)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list types of this kind (OBJECT, INPUT_OBJECT, ENUM, ...)")
	return cmd
}

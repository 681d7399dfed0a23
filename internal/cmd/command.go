// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aibor/vfstree/internal/archive"
	"github.com/aibor/vfstree/internal/vfs"
	"github.com/spf13/cobra"
)

const (
	name = "vfstree"

	depthDefault = 1
	depthMax     = 4096
)

// app holds the state shared by all commands of one invocation.
type app struct {
	io      IO
	host    vfs.Host
	open    archive.OpenFunc
	opts    options
	session *session
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "Explore the guest view of host directories and bindings",
		Long: `vfstree builds a virtual file tree out of a host root directory and
bindings of further host paths into it. Guest paths are resolved like a
process inside the tree would see them, including symbolic links.

All flags can also be provided via environment variable ` + EnvVar + `.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		root.Version = buildInfo.Main.Version
	}

	root.SetIn(a.io.Stdin)
	root.SetOut(a.io.Stdout)
	root.SetErr(a.io.Stderr)
	root.SetFlagErrorFunc(flagError)

	a.opts.addFlags(root.PersistentFlags())

	root.AddCommand(
		a.resolveCommand(),
		a.treeCommand(),
		a.exportCommand(),
	)

	return root
}

// setup runs before every command and builds the tree from the bindings.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	logger := setupLogging(a.io.Stderr, a.opts.debug)

	cfg, err := a.opts.config()
	if err != nil {
		return err
	}

	a.session, err = newSession(a.host, cfg, logger)
	if err != nil {
		return err
	}

	slog.Debug("Tree ready",
		slog.String("rootfs", cfg.RootFS),
		slog.Int("binds", len(cfg.Binds)),
	)

	return nil
}

func (a *app) resolveCommand() *cobra.Command {
	var (
		noFollow bool
		create   bool
		from     string
	)

	cmd := &cobra.Command{
		Use:   "resolve [flags] PATH...",
		Short: "Resolve guest paths to host paths",
		Long: `Resolve guest paths and print the virtual path, the actual host path and
the type of each, separated by tabs. Relative paths are resolved from the
directory given with --from.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var flags vfs.Flag
			if noFollow {
				flags |= vfs.NoFollow
			}

			if create {
				flags |= vfs.Create
			}

			tree := a.session.tree
			root := tree.Root()

			start, err := a.session.resolve(from, 0)
			if err != nil {
				return fmt.Errorf("start directory: %w", err)
			}

			for _, path := range args {
				node, err := tree.Resolve(root, start, path, flags)
				if err != nil {
					//nolint:wrapcheck
					return err
				}

				typ, err := tree.Stat(node)
				if err != nil {
					slog.Debug("Unknown type",
						slog.String("path", node.VirtualPath()),
						slog.Any("error", err),
					)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					node.VirtualPath(), node.ActualPath(), typ)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(
		&noFollow,
		"nofollow",
		noFollow,
		"do not follow a symbolic link in the last path component",
	)

	cmd.Flags().BoolVar(
		&create,
		"create",
		create,
		"create the last path component in the tree if it does not exist",
	)

	cmd.Flags().StringVar(
		&from,
		"from",
		vfs.RootName,
		"guest directory relative paths are resolved from",
	)

	return cmd
}

func (a *app) treeCommand() *cobra.Command {
	depth := depthDefault

	cmd := &cobra.Command{
		Use:   "tree [flags] [PATH]",
		Short: "Print the tree below a guest path",
		Long: `Read directories from the host down to the given depth and print the
resulting tree with the cached details of each node. Depth 0 prints only
what is in the tree already, -1 reads everything.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.session.resolve(pathArg(args), 0)
			if err != nil {
				//nolint:wrapcheck
				return err
			}

			err = fillDepth(a.session.tree, node, depth)
			if err != nil {
				return err
			}

			//nolint:wrapcheck
			return vfs.Print(cmd.OutOrStdout(), node)
		},
	}

	cmd.Flags().Var(
		&depthValue{value: &depth, max: depthMax},
		"depth",
		"number of directory levels to read from the host",
	)

	return cmd
}

// fillDepth reads the directories below node from the host down to depth.
func fillDepth(tree *vfs.Tree, node *vfs.Node, depth int) error {
	if depth == 0 {
		return nil
	}

	//nolint:wrapcheck
	return tree.Walk(node, func(_ string, _ *vfs.Node, level int) error {
		if depth > 0 && level >= depth {
			return fs.SkipDir
		}

		return nil
	})
}

func (a *app) exportCommand() *cobra.Command {
	var (
		output  string
		content bool
	)

	cmd := &cobra.Command{
		Use:   "export [flags] [PATH]",
		Short: "Write the tree below a guest path as cpio archive",
		Long: `Write the complete tree below the given guest path as newc cpio archive.
Directories, symbolic links and regular files are exported. Regular files are
stored as symbolic links to their host location, unless --content is given.
Then their content is copied from the host.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := a.session.resolve(pathArg(args), 0)
			if err != nil {
				//nolint:wrapcheck
				return err
			}

			if output == "" || output == "-" {
				return a.export(cmd, node, cmd.OutOrStdout(), content)
			}

			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}

			err = a.export(cmd, node, file, content)

			return errors.Join(err, file.Close())
		},
	}

	cmd.Flags().StringVarP(
		&output,
		"output",
		"o",
		output,
		"file to write the archive to (default is stdout)",
	)

	cmd.Flags().BoolVar(
		&content,
		"content",
		content,
		"copy the content of regular files into the archive",
	)

	return cmd
}

func (a *app) export(cmd *cobra.Command, node *vfs.Node, out io.Writer, content bool) error {
	var open archive.OpenFunc
	if content {
		open = a.open
	}

	writer := archive.NewCPIOWriter(out)

	count, err := archive.Export(cmd.Context(), a.session.tree, node, writer, open)
	if err != nil {
		//nolint:wrapcheck
		return err
	}

	slog.Info("Exported archive",
		slog.String("path", node.VirtualPath()),
		slog.Int("entries", count),
		slog.Bool("content", content),
	)

	//nolint:wrapcheck
	return writer.Close()
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return vfs.RootName
	}

	return args[0]
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/confirm"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/shopping"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/tui"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func (a *app) addCmd() *cobra.Command {
	var qty string
	cmd := &cobra.Command{
		Use:     "add <name...>",
		Short:   "Add an item (name can be multiple words)",
		Example: `  shoplist add Milk -q 2` + "\n" + `  shoplist add "Greek yogurt" -q 500g`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usagef("usage: shoplist add <name...> [-q qty]")
			}
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			it, ok := s.Add(name, qty)
			if !ok {
				return fmt.Errorf("add: could not add %q", name)
			}
			ui.OK(a.out, "added "+it.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "quantity (free text)")
	return cmd
}

func (a *app) lsCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			fmt.Fprintln(a.out, renderList(s.Items(), group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/purchased")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var name, qty string
	cmd := &cobra.Command{
		Use:   "edit <index|id>",
		Short: "Change an item's name and/or quantity",
		Args:  exactlyOneRef("edit"),
		RunE: func(cmd *cobra.Command, args []string) error {
			nameSet, qtySet := cmd.Flags().Changed("name"), cmd.Flags().Changed("qty")
			if !nameSet && !qtySet {
				return usagef("usage: shoplist edit <index|id> [--name name] [-q qty]")
			}
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			it, err := resolveRef(s.Items(), args[0])
			if err != nil {
				return err
			}
			if !nameSet {
				name = it.Name
			}
			if !qtySet {
				qty = it.Quantity
			}
			if strings.TrimSpace(name) == "" {
				return usagef("edit: empty name")
			}
			s.Edit(it.ID, name, qty)
			ui.OK(a.out, "edited")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&qty, "qty", "q", "", "new quantity")
	return cmd
}

func (a *app) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <index|id>",
		Aliases: []string{"done"},
		Short:   "Toggle purchased for an item",
		Args:    exactlyOneRef("toggle"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			it, err := resolveRef(s.Items(), args[0])
			if err != nil {
				return err
			}
			s.TogglePurchased(it.ID)
			ui.OK(a.out, "toggled")
			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <index|id>",
		Short: "Remove an item",
		Args:  exactlyOneRef("rm"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			it, err := resolveRef(s.Items(), args[0])
			if err != nil {
				return err
			}
			ok, err := confirm.DeleteItem(a.confirmerFor(yes))
			if err != nil {
				return err
			}
			if !ok {
				ui.Hint(a.out, "cancelled")
				return nil
			}
			s.Delete(it.ID)
			ui.OK(a.out, "removed")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all purchased items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			n := s.ClearPurchased()
			ui.OK(a.out, fmt.Sprintf("cleared %d purchased", n))
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the list as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			b, err := json.MarshalIndent(s.Items(), "", "  ")
			if err != nil {
				return fmt.Errorf("json marshal: %w", err)
			}
			fmt.Fprintln(a.out, string(b))
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the list with a JSON array of items",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usagef("usage: shoplist import <file>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			var items []model.ShoppingItem
			if err := json.Unmarshal(b, &items); err != nil {
				return fmt.Errorf("json unmarshal: %w", err)
			}
			if err := checkImport(items); err != nil {
				return err
			}
			s, done, err := a.openStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer done()
			s.ReplaceAll(items)
			s.Save()
			ui.OK(a.out, fmt.Sprintf("imported %d items", len(items)))
			return nil
		},
	}
}

func (a *app) tuiCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the data file changes on disk (json store)")
	return cmd
}

func (a *app) runTUI(ctx context.Context, watch bool) error {
	kv, closeKV, err := a.openKV()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeKV()

	s := shopping.New(kv,
		shopping.WithKey(a.cfg.Store.Key),
		shopping.WithLogger(a.log),
		shopping.WithIDGenerator(shopping.GeneratorFor(a.cfg.IDScheme)),
	)
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			a.log.Warn("flush shopping list", zap.Error(err))
		}
	}()
	s.Load(ctx)

	var watcher func(context.Context, func()) error
	if js, ok := kv.(*jsonstore.Store); ok && watch {
		watcher = js.Watch
	}
	return tui.Run(ctx, s, a.log, watcher)
}

// -------------- helpers ----------------

func exactlyOneRef(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usagef("usage: shoplist %s <index|id>", name)
		}
		return nil
	}
}

// resolveRef accepts an item id or a 1-based index as shown by `ls`.
func resolveRef(items shopping.Items, ref string) (model.ShoppingItem, error) {
	if it, ok := shopping.Find(items, ref); ok {
		return it, nil
	}
	n, err := strconv.Atoi(ref)
	if err != nil {
		return model.ShoppingItem{}, usagef("no item with id %q", ref)
	}
	if n < 1 || n > len(items) {
		return model.ShoppingItem{}, usagef("index out of range: have %d, got %d (run `shoplist ls` to see valid indexes)", len(items), n)
	}
	return items[n-1], nil
}

// checkImport refuses files that would break id uniqueness.
func checkImport(items []model.ShoppingItem) error {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.ID == "" {
			return fmt.Errorf("import: item %d has no id", i+1)
		}
		if seen[it.ID] {
			return fmt.Errorf("import: duplicate id %q", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

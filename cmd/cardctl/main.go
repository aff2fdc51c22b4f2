package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avvvet/cardcraft-services/internal/card"
	"github.com/avvvet/cardcraft-services/internal/cardctl"
	"github.com/avvvet/cardcraft-services/internal/cardsvc/service"
)

var (
	serverURL string
	token     string
	verbose   bool
	timeout   time.Duration

	// card fields shared by render, export and vcard
	data     card.BusinessCardData
	dataFile string

	designID string
	origin   string
	side     string
	compact  bool
	orderID  string
	output   string

	page     int
	pageSize int
)

var rootCmd = &cobra.Command{
	Use:   "cardctl",
	Short: "Command line client for the card service",
	Long: `cardctl browses the card catalog, previews layouts and downloads
print-ready PNG exports from a running card service.

The server defaults to $CARD_SERVICE_URL or http://localhost:3000.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the card service is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		msg, err := client().Health(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List one page of the design catalog",
	Long: `Lists published templates first, then the classic designs.
If the templates cannot be loaded the classic designs are still shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		g, err := client().Gallery(ctx, pageSize)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: showing classic designs only")
		}
		g.SetPage(page)
		printCatalog(cmd.OutOrStdout(), g)
		return nil
	},
}

var vcardCmd = &cobra.Command{
	Use:   "vcard",
	Short: "Print the vCard encoded in the card QR code",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := cardData()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()
		v, err := client().VCard(ctx, d)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the layout for a design as JSON",
	Long: `Renders the card data against a catalog design and prints the layout.
Without --side both sides are rendered.

Example:
  cardctl render --design classic-002 --name "Jane Doe" --email jane@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := renderRequest()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext()
		defer cancel()
		p, err := client().Render(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a print-ready PNG of one side",
	Long: `Exports one side of the card as a PNG. Premium templates need the
id of a paid order covering them (--order).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := renderRequest()
		if err != nil {
			return err
		}
		if req.Side == "" {
			req.Side = card.SideFront
		}
		req.OrderID = orderID

		ctx, cancel := commandContext()
		defer cancel()
		png, err := client().Export(ctx, req)
		if err != nil {
			return err
		}

		path := output
		if path == "" {
			path = fmt.Sprintf("business-card-%s.png", req.Side)
		}
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(png))
		return nil
	},
}

func init() {
	defaultURL := os.Getenv("CARD_SERVICE_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3000"
	}

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultURL, "card service base url")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("CARD_TOKEN"), "bearer token")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "request timeout")

	catalogCmd.Flags().IntVar(&page, "page", 0, "zero based page index")
	catalogCmd.Flags().IntVar(&pageSize, "size", card.DefaultPageSize, "entries per page")

	for _, c := range []*cobra.Command{vcardCmd, renderCmd, exportCmd} {
		f := c.Flags()
		f.StringVar(&data.Name, "name", "", "full name")
		f.StringVar(&data.Title, "title", "", "job title")
		f.StringVar(&data.Company, "company", "", "company")
		f.StringVar(&data.Email, "email", "", "email address")
		f.StringVar(&data.Phone, "phone", "", "phone number")
		f.StringVar(&data.Website, "website", "", "website")
		f.StringVar(&data.Address, "address", "", "address")
		f.StringVar(&dataFile, "data", "", "JSON file with the card fields")
	}

	for _, c := range []*cobra.Command{renderCmd, exportCmd} {
		f := c.Flags()
		f.StringVar(&designID, "design", "classic-001", "catalog design id")
		f.StringVar(&origin, "origin", "", "classic or managed; guessed from the id when empty")
		f.StringVar(&side, "side", "", "front or back")
		f.BoolVar(&compact, "compact", false, "compact back side")
	}
	exportCmd.Flags().StringVar(&orderID, "order", "", "paid order id for premium templates")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file")

	rootCmd.AddCommand(healthCmd, catalogCmd, vcardCmd, renderCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func client() *cardctl.Client {
	return cardctl.NewClient(serverURL, token)
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// cardData merges --data with the individual field flags; flags win.
func cardData() (card.BusinessCardData, error) {
	d := card.BusinessCardData{}
	if dataFile != "" {
		b, err := os.ReadFile(dataFile)
		if err != nil {
			return d, err
		}
		if err := json.Unmarshal(b, &d); err != nil {
			return d, fmt.Errorf("parse %s: %w", dataFile, err)
		}
	}
	merge := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	merge(&d.Name, data.Name)
	merge(&d.Title, data.Title)
	merge(&d.Company, data.Company)
	merge(&d.Email, data.Email)
	merge(&d.Phone, data.Phone)
	merge(&d.Website, data.Website)
	merge(&d.Address, data.Address)
	return d, nil
}

func renderRequest() (service.RenderRequest, error) {
	d, err := cardData()
	if err != nil {
		return service.RenderRequest{}, err
	}
	s := card.Side(side)
	if s != "" && !s.Valid() {
		return service.RenderRequest{}, fmt.Errorf("invalid side %q", side)
	}
	return service.RenderRequest{
		Data:    d,
		Ref:     &card.Ref{Origin: refOrigin(designID, origin), ID: designID},
		Side:    s,
		Compact: compact,
	}, nil
}

func refOrigin(id, explicit string) card.Origin {
	if explicit != "" {
		return card.Origin(explicit)
	}
	if strings.HasPrefix(id, "classic-") {
		return card.OriginClassic
	}
	return card.OriginManaged
}

func printCatalog(w io.Writer, g *card.Gallery) {
	p := g.Page()
	selected, _ := g.Selected()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tORIGIN\tNAME\tPRICE")
	for _, e := range p.Items {
		mark := ""
		if e.Ref() == selected.Ref() {
			mark = "*"
		}
		price := "free"
		if e.Premium() {
			price = e.Price()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, e.ID(), e.Origin, e.Name(), price)
	}
	tw.Flush()
	fmt.Fprintf(w, "page %d of %d (%d designs)\n", p.Index+1, p.Pages, p.Total)
}

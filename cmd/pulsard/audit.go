package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/internal/service"
)

var auditProposal uint64

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Recompute proposal tallies from voter records",
	Long: `Recompute proposal tallies from voter records and compare them with
the stored totals. Without --proposal every active proposal is audited.
Mismatches are recorded in the tally_audits table.`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().Uint64Var(&auditProposal, "proposal", 0, "Audit a single proposal number")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	svc := service.New(repository.NewStore(db), nil, nil, cfg.Governance)

	var audits []models.TallyAudit
	if auditProposal > 0 {
		audit, err := svc.Audit.AuditProposal(cmd.Context(), auditProposal)
		if err != nil {
			return err
		}
		audits = append(audits, *audit)
	} else {
		audits, err = svc.Audit.AuditAll(cmd.Context())
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderAudits(audits))
	return nil
}

func renderAudits(audits []models.TallyAudit) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Proposal", "Stored yes", "Computed yes", "Stored no", "Computed no", "Status"})

	inconsistent := 0
	for _, a := range audits {
		status := "ok"
		if !a.Consistent {
			status = "MISMATCH"
			inconsistent++
		}
		t.AppendRow(table.Row{a.ProposalNumber, a.StoredYes, a.ComputedYes, a.StoredNo, a.ComputedNo, status})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d audited", len(audits)), fmt.Sprintf("%d mismatched", inconsistent)})
	return t.Render()
}

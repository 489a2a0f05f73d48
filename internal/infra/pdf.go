package infra

// pdf.go: purchase-order PDF generation using go-pdf/fpdf.
// Produces an A4 document suitable for mailing to the supplier:
//   - order number and creation/delivery dates
//   - supplier block
//   - item table (material, quantity, unit price, line total)
//   - bold grand total and free-text notes
//
// The output file is saved to storagePath/pedido_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mrpproducao/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePedidoPDF renders a purchase order (items must be preloaded).
// Returns the absolute path to the generated file.
func GeneratePedidoPDF(pedido *model.Pedido, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("pedido_%s.pdf", strings.ReplaceAll(pedido.NumeroPedido, "/", "-"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Pedido de Compra", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, pedido.NumeroPedido, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Emitido em: %s", pedido.CreatedAt.Format("02/01/2006")), "", 1, "L", false, 0, "")
	if pedido.DataPrevisao != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Previsao de entrega: %s", pedido.DataPrevisao.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}
	if pedido.Fornecedor != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 5, "Fornecedor", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, pedido.Fornecedor.Nome, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, "CNPJ: "+pedido.Fornecedor.CNPJ, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	colMaterial := contentW * 0.45
	colQtd := contentW * 0.15
	colUnit := contentW * 0.20
	colTotal := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(colMaterial, 7, "Material", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQtd, 7, "Qtd.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colUnit, 7, "Valor unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range pedido.Itens {
		nome := item.MaterialID.String()
		unidade := ""
		if item.Material != nil {
			nome = item.Material.Nome
			unidade = " " + item.Material.Unidade
		}
		pdf.CellFormat(colMaterial, 6, nome, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQtd, 6, item.Quantidade.String()+unidade, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colUnit, 6, "R$ "+item.ValorUnitario.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 6, "R$ "+item.ValorTotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colMaterial+colQtd+colUnit, 8, "Valor total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 8, "R$ "+pedido.ValorTotal.StringFixed(2), "1", 1, "R", false, 0, "")

	if pedido.Observacoes != nil && *pedido.Observacoes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 5, "Observacoes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, *pedido.Observacoes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}

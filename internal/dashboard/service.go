// internal/dashboard/service.go
package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/grupozeta/api-financeiro/internal/cache"
	"github.com/grupozeta/api-financeiro/internal/conta"
	"github.com/grupozeta/api-financeiro/internal/parcela"
	"github.com/grupozeta/api-financeiro/internal/status"
)

// Bucket agrega valores de um recorte de parcelas.
type Bucket struct {
	Total   decimal.Decimal `json:"total"`
	Pago    decimal.Decimal `json:"pago"`
	EmAberto decimal.Decimal `json:"emAberto"`
}

// Lado resume um dos lados (pagar ou receber) da organização.
type Lado struct {
	MesAtual Bucket          `json:"mesAtual"`
	Vencidas decimal.Decimal `json:"vencidas"`
	Proximas decimal.Decimal `json:"proximas"`
	Geral    Bucket          `json:"geral"`
}

// Resumo é a visão consolidada do dashboard.
type Resumo struct {
	Pagar    Lado            `json:"pagar"`
	Receber  Lado            `json:"receber"`
	APagar   decimal.Decimal `json:"aPagar"`
	AReceber decimal.Decimal `json:"aReceber"`
	Saldo    decimal.Decimal `json:"saldo"`
	GeradoEm time.Time       `json:"geradoEm"`
}

// Service é o leitor de agregados: somente leitura, consultas independentes
// em paralelo, embrulhado por cache-aside com TTL fixo. Todo mutador do
// núcleo invalida a chave da organização — dashboard velho depois de um
// pagamento é defeito, não consistência eventual aceitável.
type Service struct {
	DB    *gorm.DB
	Cache cache.Cache
	TTL   time.Duration
	Agora func() time.Time
}

func NewService(db *gorm.DB, c cache.Cache, ttl time.Duration) *Service {
	return &Service{DB: db, Cache: c, TTL: ttl, Agora: time.Now}
}

// Resumo devolve a visão consolidada da organização, do cache quando
// possível, recomputando no miss.
func (s *Service) Resumo(ctx context.Context, orgID uint) (*Resumo, error) {
	chave := cache.ChaveDashboard(orgID)
	if bruto, ok := s.Cache.Get(ctx, chave); ok {
		var r Resumo
		if err := json.Unmarshal([]byte(bruto), &r); err == nil {
			return &r, nil
		}
		log.Printf("dashboard: entrada de cache corrompida para %s, recomputando", chave)
	}

	r, err := s.computar(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if bruto, err := json.Marshal(r); err == nil {
		s.Cache.Set(ctx, chave, string(bruto), s.TTL)
	}
	return r, nil
}

func (s *Service) computar(ctx context.Context, orgID uint) (*Resumo, error) {
	hoje := parcela.DataUTC(s.Agora())
	inicioMes := time.Date(hoje.Year(), hoje.Month(), 1, 0, 0, 0, 0, time.UTC)
	inicioProximoMes := inicioMes.AddDate(0, 1, 0)

	// Janela "próximas": hoje até min(hoje+7d, fim do mês). Comportamento da
	// origem preservado: perto da virada do mês a janela encurta, não
	// transborda para o mês seguinte.
	fimMes := inicioProximoMes.AddDate(0, 0, -1)
	fimJanela := hoje.AddDate(0, 0, 7)
	if fimJanela.After(fimMes) {
		fimJanela = fimMes
	}

	var pagar, receber Lado
	g, gctx := errgroup.WithContext(ctx)

	carregar := func(tipo conta.Tipo, destino *Lado) {
		g.Go(func() error { return s.bucketMes(gctx, orgID, tipo, inicioMes, inicioProximoMes, &destino.MesAtual) })
		g.Go(func() error { return s.somaVencidas(gctx, orgID, tipo, &destino.Vencidas) })
		g.Go(func() error { return s.somaProximas(gctx, orgID, tipo, hoje, fimJanela, &destino.Proximas) })
		g.Go(func() error { return s.bucketGeral(gctx, orgID, tipo, &destino.Geral) })
	}
	carregar(conta.TipoPagar, &pagar)
	carregar(conta.TipoReceber, &receber)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Resumo{
		Pagar:    pagar,
		Receber:  receber,
		APagar:   pagar.Geral.EmAberto,
		AReceber: receber.Geral.EmAberto,
		Saldo:    receber.Geral.EmAberto.Sub(pagar.Geral.EmAberto),
		GeradoEm: s.Agora().UTC(),
	}
	return r, nil
}

type somas struct {
	Total decimal.Decimal
	Pago  decimal.Decimal
}

func (s *Service) base(ctx context.Context, orgID uint, tipo conta.Tipo) *gorm.DB {
	return s.DB.WithContext(ctx).Table("parcelas").
		Joins("JOIN contas ON contas.id = parcelas.conta_id").
		Where("parcelas.organizacao_id = ? AND contas.tipo = ? AND contas.status <> ?", orgID, tipo, status.Cancelado)
}

func (s *Service) bucketMes(ctx context.Context, orgID uint, tipo conta.Tipo, de, ate time.Time, destino *Bucket) error {
	var v somas
	err := s.base(ctx, orgID, tipo).
		Where("parcelas.data_vencimento >= ? AND parcelas.data_vencimento < ?", de, ate).
		Select("COALESCE(SUM(parcelas.valor), 0) AS total, COALESCE(SUM(parcelas.valor_pago), 0) AS pago").
		Scan(&v).Error
	if err != nil {
		return err
	}
	*destino = Bucket{Total: v.Total, Pago: v.Pago, EmAberto: v.Total.Sub(v.Pago)}
	return nil
}

func (s *Service) bucketGeral(ctx context.Context, orgID uint, tipo conta.Tipo, destino *Bucket) error {
	var v somas
	err := s.base(ctx, orgID, tipo).
		Select("COALESCE(SUM(parcelas.valor), 0) AS total, COALESCE(SUM(parcelas.valor_pago), 0) AS pago").
		Scan(&v).Error
	if err != nil {
		return err
	}
	*destino = Bucket{Total: v.Total, Pago: v.Pago, EmAberto: v.Total.Sub(v.Pago)}
	return nil
}

func (s *Service) somaVencidas(ctx context.Context, orgID uint, tipo conta.Tipo, destino *decimal.Decimal) error {
	return s.base(ctx, orgID, tipo).
		Where("parcelas.status = ?", status.Vencido).
		Select("COALESCE(SUM(parcelas.valor - parcelas.valor_pago), 0)").
		Scan(destino).Error
}

func (s *Service) somaProximas(ctx context.Context, orgID uint, tipo conta.Tipo, de, ate time.Time, destino *decimal.Decimal) error {
	return s.base(ctx, orgID, tipo).
		Where("parcelas.status = ? AND parcelas.data_vencimento >= ? AND parcelas.data_vencimento <= ?", status.Pendente, de, ate).
		Select("COALESCE(SUM(parcelas.valor - parcelas.valor_pago), 0)").
		Scan(destino).Error
}

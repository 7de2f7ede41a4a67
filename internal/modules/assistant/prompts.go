package assistant

import (
	"encoding/json"
	"fmt"

	"gumeo/internal/domain"
)

// Context selects which instruction block is appended to the system prompt.
type Context string

const (
	ContextGeral     Context = "geral"
	ContextTriagem   Context = "triagem"
	ContextRelatorio Context = "relatorio"
	ContextInsight   Context = "insight"
)

const basePromptFormat = `Você é um assistente médico inteligente especializado em ajudar profissionais de saúde com o sistema Gumeo.

Informações do profissional:
- Nome: %s
- Especialidade: %s
- CRM: %s

Instruções gerais:
- Responda sempre em português brasileiro
- Seja profissional, mas amigável
- Mantenha respostas concisas e práticas
- Use terminologia médica adequada quando necessário
- Sempre priorize a ética médica e segurança do paciente`

// contextInstructions maps each context tag to its instruction block.
// Kept declarative so the prompt contract is testable without the
// upstream call. geral adds nothing beyond the base prompt.
var contextInstructions = map[Context]string{
	ContextTriagem: `Contexto: TRIAGEM DIGITAL
Você está ajudando com triagem inicial de pacientes. Baseie-se nos dados fornecidos para:
- Identificar sintomas prioritários
- Sugerir nível de urgência (baixa, média, alta)
- Recomendar próximos passos
- NUNCA faça diagnósticos definitivos
- SEMPRE recomende avaliação médica presencial quando necessário`,

	ContextRelatorio: `Contexto: GERAÇÃO DE RELATÓRIOS
Você está ajudando a gerar relatórios médicos. Mantenha:
- Linguagem técnica apropriada
- Estrutura clara e organizada
- Informações relevantes e precisas
- Formato profissional`,

	ContextInsight: `Contexto: INSIGHTS ESTRATÉGICOS
Você está analisando dados para fornecer insights sobre:
- Padrões de consultas
- Performance financeira
- Gestão de tempo
- Oportunidades de melhoria
- Sugestões de otimização`,
}

func orNotInformed(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// BuildSystemPrompt assembles the personalized system prompt: base
// identity, the caller's profile, the context block and any structured
// data forwarded with the request. A nil profile degrades to the
// "Não informado" placeholders, it never fails the request.
func BuildSystemPrompt(profile *domain.Profile, ctx Context, patientData, appointmentData json.RawMessage) string {
	var name, specialty, crm string
	if profile != nil {
		name = profile.FullName
		specialty = profile.Specialty
		crm = profile.CRM
	}

	prompt := fmt.Sprintf(basePromptFormat,
		orNotInformed(name, "Não informado"),
		orNotInformed(specialty, "Não informada"),
		orNotInformed(crm, "Não informado"),
	)

	if block, ok := contextInstructions[ctx]; ok {
		prompt += "\n\n" + block
	}

	if len(patientData) > 0 {
		prompt += "\n\nDados do paciente: " + string(patientData)
	}
	if len(appointmentData) > 0 {
		prompt += "\n\nDados da consulta: " + string(appointmentData)
	}

	return prompt
}

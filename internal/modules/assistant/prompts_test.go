package assistant

import (
	"encoding/json"
	"strings"
	"testing"

	"gumeo/internal/domain"
)

func TestBuildSystemPromptPersonalization(t *testing.T) {
	profile := &domain.Profile{
		FullName:  "Dra. Ana Souza",
		Specialty: "Cardiologia",
		CRM:       "CRM-SP 12345",
	}

	prompt := BuildSystemPrompt(profile, ContextGeral, nil, nil)

	for _, want := range []string{"Dra. Ana Souza", "Cardiologia", "CRM-SP 12345", "português brasileiro"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "Contexto:") {
		t.Fatal("geral must not append a context block")
	}
}

func TestBuildSystemPromptNilProfileFallbacks(t *testing.T) {
	prompt := BuildSystemPrompt(nil, ContextGeral, nil, nil)

	if !strings.Contains(prompt, "Nome: Não informado") {
		t.Fatal("missing name fallback")
	}
	if !strings.Contains(prompt, "Especialidade: Não informada") {
		t.Fatal("missing specialty fallback")
	}
	if !strings.Contains(prompt, "CRM: Não informado") {
		t.Fatal("missing crm fallback")
	}
}

func TestBuildSystemPromptTriagemAlwaysNonDiagnostic(t *testing.T) {
	prompt := BuildSystemPrompt(nil, ContextTriagem, nil, nil)

	if !strings.Contains(prompt, "TRIAGEM DIGITAL") {
		t.Fatal("missing triagem block")
	}
	if !strings.Contains(prompt, "NUNCA faça diagnósticos definitivos") {
		t.Fatal("triagem block must forbid definitive diagnoses")
	}
	if !strings.Contains(prompt, "avaliação médica presencial") {
		t.Fatal("triagem block must recommend in-person evaluation")
	}
}

func TestBuildSystemPromptContextBlocks(t *testing.T) {
	cases := map[Context]string{
		ContextRelatorio: "GERAÇÃO DE RELATÓRIOS",
		ContextInsight:   "INSIGHTS ESTRATÉGICOS",
	}
	for tag, marker := range cases {
		if prompt := BuildSystemPrompt(nil, tag, nil, nil); !strings.Contains(prompt, marker) {
			t.Fatalf("context %s missing marker %q", tag, marker)
		}
	}
}

func TestBuildSystemPromptAppendsStructuredData(t *testing.T) {
	patient := json.RawMessage(`{"nome":"Maria","idade":34}`)
	appt := json.RawMessage(`{"data":"2026-09-01"}`)

	prompt := BuildSystemPrompt(nil, ContextTriagem, patient, appt)

	if !strings.Contains(prompt, `Dados do paciente: {"nome":"Maria","idade":34}`) {
		t.Fatal("patient data not appended")
	}
	if !strings.Contains(prompt, `Dados da consulta: {"data":"2026-09-01"}`) {
		t.Fatal("appointment data not appended")
	}
}

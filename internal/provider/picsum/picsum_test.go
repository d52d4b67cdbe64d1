package picsum_test

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/DMarby/photo-gateway/internal/provider/picsum"
)

func TestPreprocess(t *testing.T) {
	p := picsum.New(picsum.BaseURL)

	tests := []struct {
		Name           string
		Overrides      params.Values
		ExpectedURL    string
		ExpectedParams params.Values
	}{
		{"defaults", params.Values{}, "https://picsum.photos/1920/1080", params.Values{}},
		{"size and grayscale", params.Values{"w": "800", "h": "600", "grayscale": ""}, "https://picsum.photos/800/600", params.Values{"grayscale": ""}},
		{"grayscale value is dropped", params.Values{"grayscale": "1"}, "https://picsum.photos/1920/1080", params.Values{"grayscale": ""}},
		{"webp", params.Values{"webp": ""}, "https://picsum.photos/1920/1080.webp", params.Values{}},
		{"blur without value", params.Values{"blur": ""}, "https://picsum.photos/1920/1080", params.Values{"blur": ""}},
		{"blur with value", params.Values{"blur": "3", "w": "200"}, "https://picsum.photos/200/1080", params.Values{"blur": "3"}},
		{"other keys are dropped", params.Values{"theme": "nature", "orientation": "portrait", "h": "300"}, "https://picsum.photos/1920/300", params.Values{}},
		{"path is escaped", params.Values{"w": "1/2"}, "https://picsum.photos/1%2F2/1080", params.Values{}},
	}

	for _, test := range tests {
		built := params.Build(p.Config().Defaults, test.Overrides)
		target, query, err := p.Preprocess(provider.Request{URL: p.Config().BaseURL, Params: built, Overrides: test.Overrides})
		if err != nil {
			t.Errorf("%s: %s", test.Name, err)
			continue
		}

		if target != test.ExpectedURL {
			t.Errorf("%s: wrong url %s", test.Name, target)
		}

		if !reflect.DeepEqual(query, test.ExpectedParams) {
			t.Errorf("%s: wrong params %#v", test.Name, query)
		}
	}
}

func TestPreprocessIgnoresBuiltParams(t *testing.T) {
	p := picsum.New(picsum.BaseURL)

	target, query, err := p.Preprocess(provider.Request{
		URL:       p.Config().BaseURL,
		Params:    params.Values{"w": "10", "h": "10", "grayscale": ""},
		Overrides: params.Values{},
	})
	if err != nil {
		t.Fatal(err)
	}

	if target != "https://picsum.photos/1920/1080" {
		t.Errorf("wrong url %s", target)
	}

	if len(query) != 0 {
		t.Errorf("wrong params %#v", query)
	}
}

func TestPostprocess(t *testing.T) {
	p := picsum.New(picsum.BaseURL)

	resp := &provider.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte("image")}
	data, mimeType, err := p.Postprocess(context.Background(), nil, resp, params.Values{})
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "image" || mimeType != "image/jpeg" {
		t.Errorf("wrong result %s %s", data, mimeType)
	}
}

func TestConfig(t *testing.T) {
	p := picsum.New(picsum.BaseURL)

	if p.Config().ID != "lorem_picsum" {
		t.Errorf("wrong id %s", p.Config().ID)
	}

	if !reflect.DeepEqual(p.Config().Defaults, params.Values{"w": "1920", "h": "1080"}) {
		t.Errorf("wrong defaults %#v", p.Config().Defaults)
	}
}
